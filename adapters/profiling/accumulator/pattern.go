package accumulator

import "strings"

// StructuralPattern maps each character of a value to a shape class:
// digit -> '9', letter -> 'A', anything else passes through literally
// (spec section 4.3, step 7).
func StructuralPattern(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteByte('9')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteByte('A')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
