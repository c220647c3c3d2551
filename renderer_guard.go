package bubbles

import (
	"fmt"
)

// RendererTag names the module that presents the bubble field. An app has
// at most one.
type RendererTag struct {
	Name string
}

// ClaimRenderer registers name as the app's renderer. Installing a second,
// different renderer is a wiring fault and panics.
func ClaimRenderer(app *App, name string) {
	if tag, ok := Resource[RendererTag](app); ok {
		if tag.Name == name {
			return
		}
		msg := fmt.Sprintf("renderer %q already installed, cannot add %q", tag.Name, name)
		app.Logger().Errorf("%s", msg)
		panic(msg)
	}
	app.addResources(&RendererTag{Name: name})
}
