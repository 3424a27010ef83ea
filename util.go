package sqlmarkup

import "strings"

// isNameStart checks if a byte may start a label or placeholder name.
func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isNameChar checks if a byte may appear in a label or placeholder name.
func isNameChar(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}

// isValidName checks s against [A-Za-z_][A-Za-z0-9_]*.
func isValidName(s string) bool {
	if s == "" || !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}

// placeholderKey returns a canonical :name key for a bind name.
// ok is false if the name part is not a valid identifier or is reserved
// for generated keys.
func placeholderKey(name string) (key string, ok bool) {
	key = name
	if !strings.HasPrefix(key, ":") {
		key = ":" + key
	}
	return key, isValidName(key[1:]) && !isGeneratedName(key[1:])
}

// isGeneratedName checks if a name has the shape of a generated key:
// __1__, __1_2__ or ids_1__.
func isGeneratedName(s string) bool {
	s, ok := strings.CutSuffix(s, "__")
	if !ok {
		return false
	}
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return i < len(s) && i > 0 && s[i-1] == '_'
}
