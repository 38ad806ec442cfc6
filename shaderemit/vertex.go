// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaderemit

import "strings"

const vertexShaderTemplate = `#version 310 es
#define FLIP_ORIGIN 0

in vec2 position;
in vec2 texcoord;
out vec2 tc;

void main() {
	gl_Position = vec4(position, 0.0, 1.0);
#if FLIP_ORIGIN
	tc = vec2(texcoord.x, 1.0 - texcoord.y);
#else
	tc = texcoord;
#endif
}
`

// vertexShaderSource returns the fixed vertex shader template, with its
// one tunable (FLIP_ORIGIN) patched to 1 when the final phase must flip
// the texture origin (spec.md section 4.5 point 9).
func vertexShaderSource(flipOrigin bool) string {
	if !flipOrigin {
		return vertexShaderTemplate
	}
	return strings.Replace(vertexShaderTemplate, "#define FLIP_ORIGIN 0", "#define FLIP_ORIGIN 1", 1)
}
