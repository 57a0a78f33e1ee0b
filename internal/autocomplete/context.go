// Package autocomplete implements the context-aware completion engine
// behind the query editor: cursor context analysis, candidate ranking
// over a static catalog plus host-supplied dynamic candidates, and
// quote-aware edit application.
package autocomplete

import "strings"

const (
	// contextScanWindow bounds the backward scan for an enclosing call.
	contextScanWindow = 220

	// queryRoot is the binding the console exposes for the database handle.
	queryRoot = "db"
)

// fluentMethods are the calls whose argument position the analyzer
// reports, so the ranker can favor the kind expected at that position.
var fluentMethods = map[string]bool{
	"where":           true,
	"orderBy":         true,
	"select":          true,
	"startAt":         true,
	"startAfter":      true,
	"endAt":           true,
	"endBefore":       true,
	"limit":           true,
	"limitToLast":     true,
	"collection":      true,
	"collectionGroup": true,
	"doc":             true,
}

// MethodCall identifies which fluent call the cursor sits in and the
// zero-based comma-delimited argument position.
type MethodCall struct {
	Name     string
	ArgIndex int
}

// Context describes the syntactic position of the cursor.
type Context struct {
	IsLineEmpty bool
	Trigger     string
	IsInString  bool
	IsAfterDot  bool
	IsDBAccess  bool
	MethodCall  *MethodCall
}

// Analyze inspects the text up to the cursor and derives the completion
// context. It is a pure function: no state is kept between calls.
func Analyze(text string, cursor int) Context {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	before := text[:cursor]

	line := before
	if idx := strings.LastIndexByte(before, '\n'); idx >= 0 {
		line = before[idx+1:]
	}

	ctx := Context{IsLineEmpty: strings.TrimSpace(line) == ""}

	trimmed := strings.TrimRight(line, " \t")

	quote, quoteStart := openString(trimmed)
	switch {
	case quote != 0:
		// Trigger keeps the opening quote so later stages can strip it
		// symmetrically.
		ctx.IsInString = true
		ctx.Trigger = trimmed[quoteStart:]
	case len(trimmed) > 0 && (trimmed[len(trimmed)-1] == '(' || trimmed[len(trimmed)-1] == ','):
		// Fresh argument position: no partial token to match.
	default:
		ctx.Trigger = trailingToken(trimmed)
	}

	code := trimmed
	if quote != 0 {
		code = strings.TrimRight(trimmed[:quoteStart], " \t")
	}
	ctx.IsAfterDot = afterDot(code)
	ctx.IsDBAccess = dbAccess(code)
	ctx.MethodCall = enclosingCall(before)

	return ctx
}

// openString scans a line and reports the active quote character and
// the index of its opening quote, or 0 when every string is closed.
// An escaped quote (odd number of preceding backslashes) neither opens
// nor closes a string.
func openString(line string) (byte, int) {
	var quote byte
	start := -1
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch != '\'' && ch != '"' && ch != '`' {
			continue
		}
		if escaped(line, i) {
			continue
		}
		if quote == 0 {
			quote = ch
			start = i
		} else if ch == quote {
			quote = 0
			start = -1
		}
	}
	if quote == 0 {
		return 0, -1
	}
	return quote, start
}

// escaped reports whether the character at i is preceded by an odd
// number of backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// trailingToken derives the trigger by longest match: a dotted
// identifier pair, a trailing dot plus partial identifier, or a bare
// identifier.
func trailingToken(line string) string {
	i := len(line)
	for i > 0 && isIdentChar(line[i-1]) {
		i--
	}
	if i > 0 && line[i-1] == '.' {
		j := i - 1
		for j > 0 && isIdentChar(line[j-1]) {
			j--
		}
		return line[j:]
	}
	return line[i:]
}

// afterDot reports whether the code part of the line ends with a dot
// plus zero or more identifier characters.
func afterDot(code string) bool {
	i := len(code)
	for i > 0 && isIdentChar(code[i-1]) {
		i--
	}
	return i > 0 && code[i-1] == '.'
}

// dbAccess reports whether the line ends in a query-root-then-dot
// pattern such as "db." or "db.coll".
func dbAccess(code string) bool {
	i := len(code)
	for i > 0 && isIdentChar(code[i-1]) {
		i--
	}
	if i == 0 || code[i-1] != '.' {
		return false
	}
	j := i - 1
	for j > 0 && isIdentChar(code[j-1]) {
		j--
	}
	return code[j:i-1] == queryRoot
}

// enclosingCall scans the last contextScanWindow characters before the
// cursor for the nearest enclosing fluent call that has no closing
// paren yet, counting top-level commas to derive the argument index.
func enclosingCall(before string) *MethodCall {
	window := before
	if len(window) > contextScanWindow {
		window = window[len(window)-contextScanWindow:]
	}

	type frame struct {
		name   string
		commas int
	}
	var stack []frame
	var quote byte

	for i := 0; i < len(window); i++ {
		ch := window[i]
		if quote != 0 {
			if ch == quote && !escaped(window, i) {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '(':
			j := i
			for j > 0 && isIdentChar(window[j-1]) {
				j--
			}
			stack = append(stack, frame{name: window[j:i]})
		case ')':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case ',':
			if len(stack) > 0 {
				stack[len(stack)-1].commas++
			}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if fluentMethods[stack[i].name] {
			return &MethodCall{Name: stack[i].name, ArgIndex: stack[i].commas}
		}
	}
	return nil
}

func isIdentChar(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z')
}
