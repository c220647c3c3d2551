package shaders

import (
	_ "embed"
)

//go:embed bubbles.wgsl
var BubblesWGSL string
