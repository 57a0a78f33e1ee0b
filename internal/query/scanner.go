package query

import "strings"

// The extraction helpers below use a small hand-written scanner instead
// of regular expressions: quote/escape tracking and top-level comma
// splitting are easy to get subtly wrong with regex alone.

// firstCall returns the argument list of the first completed call to
// method anywhere in text.
func firstCall(text, method string) ([]string, bool) {
	calls := scanCalls(text, method, true)
	if len(calls) == 0 {
		return nil, false
	}
	return calls[0], true
}

// allCalls returns the argument lists of every completed call to method,
// in source order.
func allCalls(text, method string) [][]string {
	return scanCalls(text, method, false)
}

func scanCalls(text, method string, firstOnly bool) [][]string {
	var calls [][]string
	for i := 0; i+len(method) <= len(text); i++ {
		if text[i:i+len(method)] != method {
			continue
		}
		if i > 0 && isIdentChar(text[i-1]) {
			continue
		}
		j := i + len(method)
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		// A following identifier character means a longer method name
		// (e.g. collectionGroup while scanning for collection).
		if j >= len(text) || text[j] != '(' {
			continue
		}
		args, end, ok := scanArgs(text, j)
		if !ok {
			// Unterminated call: in-progress text, keep scanning past it.
			i = j
			continue
		}
		calls = append(calls, args)
		if firstOnly {
			return calls
		}
		i = end
	}
	return calls
}

// scanArgs parses a parenthesized argument list starting at the opening
// paren, splitting on commas that sit outside strings and outside nested
// parens/brackets. It returns the raw argument substrings and the index
// of the closing paren.
func scanArgs(text string, open int) ([]string, int, bool) {
	var args []string
	var current strings.Builder
	depth := 1
	var quote byte

	for i := open + 1; i < len(text); i++ {
		ch := text[i]

		if quote != 0 {
			current.WriteByte(ch)
			if ch == '\\' && i+1 < len(text) {
				i++
				current.WriteByte(text[i])
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}

		switch ch {
		case '\'', '"', '`':
			quote = ch
			current.WriteByte(ch)
		case '(', '[', '{':
			depth++
			current.WriteByte(ch)
		case ')':
			depth--
			if depth == 0 {
				if arg := strings.TrimSpace(current.String()); arg != "" || len(args) > 0 {
					args = append(args, arg)
				}
				return args, i, true
			}
			current.WriteByte(ch)
		case ']', '}':
			if depth > 1 {
				depth--
			}
			current.WriteByte(ch)
		case ',':
			if depth == 1 {
				args = append(args, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteByte(ch)
			}
		default:
			current.WriteByte(ch)
		}
	}

	return nil, len(text), false
}

// unquote strips one layer of matching quotes from a token and resolves
// backslash escapes. Reports false when the token is not a quoted
// string.
func unquote(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if len(token) < 2 {
		return "", false
	}
	quote := token[0]
	if quote != '\'' && quote != '"' && quote != '`' {
		return "", false
	}
	if token[len(token)-1] != quote {
		return "", false
	}
	body := token[1 : len(token)-1]
	if !strings.Contains(body, `\`) {
		return body, true
	}
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		out.WriteByte(body[i])
	}
	return out.String(), true
}

func isIdentChar(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z')
}
