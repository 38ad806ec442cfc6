// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaderemit

import "testing"

func TestRewritePrefixSimple(t *testing.T) {
	got := RewritePrefix("float x = PREFIX(strength);", "eff3")
	want := "float x = eff3_strength;"
	if got != want {
		t.Errorf("RewritePrefix = %q, want %q", got, want)
	}
}

func TestRewritePrefixNestedParens(t *testing.T) {
	got := RewritePrefix("vec3 v = PREFIX(mix(a, b));", "eff1")
	want := "vec3 v = eff1_mix(a, b);"
	if got != want {
		t.Errorf("RewritePrefix = %q, want %q", got, want)
	}
}

func TestRewritePrefixMultipleOccurrences(t *testing.T) {
	got := RewritePrefix("PREFIX(a) + PREFIX(b)", "eff0")
	want := "eff0_a + eff0_b"
	if got != want {
		t.Errorf("RewritePrefix = %q, want %q", got, want)
	}
}

func TestRewritePrefixNoMatch(t *testing.T) {
	got := RewritePrefix("vec4 FUNCNAME(vec2 tc) { return INPUT(tc); }", "eff0")
	want := "vec4 FUNCNAME(vec2 tc) { return INPUT(tc); }"
	if got != want {
		t.Errorf("RewritePrefix with no PREFIX call should be a no-op, got %q", got)
	}
}
