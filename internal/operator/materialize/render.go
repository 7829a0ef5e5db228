package materialize

import (
	"fmt"
	"strings"
)

// Render substitutes every {{variable}} in body with its value from vars.
//
// Only flat substitution is supported: whitespace inside the braces is
// ignored and {{{variable}}} is accepted as an equivalent form. Values are
// inserted verbatim. Unknown variables and unterminated or empty expressions
// yield a *RenderError naming the template.
func Render(template, body string, vars map[string]string) (string, error) {
	var (
		out     strings.Builder
		missing []string
		seen    = make(map[string]bool)
	)

	rest := body
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:start])
		rest = rest[start+2:]

		closing := "}}"
		if strings.HasPrefix(rest, "{") {
			rest = rest[1:]
			closing = "}}}"
		}

		end := strings.Index(rest, closing)
		if end < 0 {
			return "", &RenderError{Template: template, Reason: "unterminated expression"}
		}
		name := strings.TrimSpace(rest[:end])
		rest = rest[end+len(closing):]

		if !isVariableName(name) {
			return "", &RenderError{Template: template, Reason: fmt.Sprintf("invalid expression %q", name)}
		}

		value, ok := vars[name]
		if !ok {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
			continue
		}
		out.WriteString(value)
	}

	if len(missing) > 0 {
		return "", &RenderError{Template: template, Missing: missing}
	}
	return out.String(), nil
}

// isVariableName accepts the characters allowed in Secret and ConfigMap keys.
func isVariableName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
