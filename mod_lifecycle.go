package bubbles

// LifecycleModule stops the app once MaxFrames frames have run. Zero means
// no limit.
type LifecycleModule struct {
	MaxFrames uint64
}

type frameBudget struct {
	max uint64
}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	if mod.MaxFrames == 0 {
		return
	}
	cmd.AddResources(&frameBudget{max: mod.MaxFrames})
	app.UseSystem(
		System(frameBudgetSystem).
			InStage(Finale).
			RunAlways(),
	)
}

func frameBudgetSystem(t *Time, budget *frameBudget, cmd *Commands) {
	if t.Frame >= budget.max {
		cmd.Logger().Debugf("frame budget of %d reached", budget.max)
		cmd.Exit()
	}
}
