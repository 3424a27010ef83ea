package sqlmarkup

type tokenKind int

const (
	tokenPositional tokenKind = iota
	tokenNamed
	tokenLabel
)

// token is a placeholder or label found in a template.
// start and end are byte offsets, end is exclusive.
type token struct {
	kind  tokenKind
	start int
	end   int
	// name holds the placeholder key (":id") or the label name.
	name string
	// fragment is the raw label body between the colon and the closing braces.
	fragment    string
	hasFragment bool
}

/*
tokenize scans masked for markup tokens and returns them in source order.

	{{label}} or {{label:fragment}}  label, fragment may contain nested {{...}}
	?                                 positional placeholder
	:name                             named placeholder

A :: pair is a type cast and never starts a named placeholder.
Label fragments are sliced from src, so quoted literals inside them survive.
*/
func tokenize(src, masked string) []token {
	var tokens []token
	n := len(masked)
	for i := 0; i < n; {
		switch masked[i] {
		case '{':
			if t, ok := scanLabel(src, masked, i); ok {
				tokens = append(tokens, t)
				i = t.end
				continue
			}
		case '?':
			tokens = append(tokens, token{kind: tokenPositional, start: i, end: i + 1})
		case ':':
			if i+1 < n && masked[i+1] == ':' {
				i += 2
				continue
			}
			j := i + 1
			for j < n && isNameChar(masked[j]) {
				j++
			}
			if j > i+1 {
				tokens = append(tokens, token{kind: tokenNamed, start: i, end: j, name: masked[i:j]})
				i = j
				continue
			}
		}
		i++
	}
	return tokens
}

// scanLabel tries to read a label token starting at pos.
func scanLabel(src, masked string, pos int) (t token, ok bool) {
	n := len(masked)
	if pos+1 >= n || masked[pos+1] != '{' {
		return t, false
	}
	i := pos + 2
	for i < n && isNameChar(masked[i]) {
		i++
	}
	if i == pos+2 || i >= n {
		return t, false
	}
	t = token{kind: tokenLabel, start: pos, name: masked[pos+2 : i]}
	switch {
	case masked[i] == '}' && i+1 < n && masked[i+1] == '}':
		t.end = i + 2
		return t, true
	case masked[i] != ':':
		return t, false
	}

	// Find the closing braces, honouring nested labels
	body := i + 1
	depth := 1
	for i = body; i+1 < n; {
		switch {
		case masked[i] == '{' && masked[i+1] == '{':
			depth++
			i += 2
		case masked[i] == '}' && masked[i+1] == '}':
			depth--
			if depth == 0 {
				t.end = i + 2
				t.fragment = src[body:i]
				t.hasFragment = true
				return t, true
			}
			i += 2
		default:
			i++
		}
	}
	return t, false
}
