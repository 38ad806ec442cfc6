// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaderemit

import "strings"

// RewritePrefix rewrites every occurrence of the literal macro call
// PREFIX(x) in src to effectID + "_" + x, where x is found by a balanced
// parenthesis scan rather than a regular expression, so arbitrary
// nested parentheses inside the argument are handled correctly
// (spec.md section 9). PREFIX never nests a further PREFIX call inside
// its own argument.
func RewritePrefix(src, effectID string) string {
	const marker = "PREFIX("
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(src[i:], marker)
		if idx < 0 {
			b.WriteString(src[i:])
			break
		}
		idx += i
		b.WriteString(src[i:idx])

		openParen := idx + len(marker) - 1
		argStart := openParen + 1
		depth := 1
		j := argStart
		for depth > 0 && j < len(src) {
			switch src[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			j++
		}
		arg := src[argStart : j-1]

		b.WriteString(effectID)
		b.WriteByte('_')
		b.WriteString(arg)
		i = j
	}
	return b.String()
}
