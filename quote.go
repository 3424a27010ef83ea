package sqlmarkup

import "strings"

/*
maskQuotes returns a copy of s with every quoted literal replaced by spaces.

Both '...' and "..." literals are masked in a single pass, including the
quotes themselves. A backslash escapes the next byte inside a literal. An
unterminated literal is masked up to the end of the string.

The result has exactly the same length as s, so offsets found in the masked
copy can be used to slice the original string.
*/
func maskQuotes(s string) string {
	if !strings.ContainsAny(s, `'"`) {
		return s
	}
	b := []byte(s)
	var quote byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		if quote == 0 {
			if c == '\'' || c == '"' {
				quote = c
				b[i] = ' '
			}
			continue
		}
		b[i] = ' '
		switch c {
		case '\\':
			if i+1 < len(b) {
				i++
				b[i] = ' '
			}
		case quote:
			quote = 0
		}
	}
	return string(b)
}
