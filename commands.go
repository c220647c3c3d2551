package bubbles

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Exit stops the app after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.exitRequested = true
}

// OnTeardown registers fn to run when the app stops. Hooks run in reverse
// registration order.
func (cmd *Commands) OnTeardown(fn func()) {
	cmd.app.onTeardown(fn)
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
