// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader displaces instances by their animation uniforms.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades with one directional light and a per-instance tint.
//
//go:embed mesh.frag
var MeshFragmentShader string
