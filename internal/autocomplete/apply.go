package autocomplete

import "strings"

// Apply inserts the chosen completion into the text and returns the new
// text and cursor position.
//
// When the trigger begins with a quote, the completion replaces the
// content of the enclosing string literal in place, leaving the original
// quote pair intact. Otherwise the trigger characters before the cursor
// are spliced out and the completion's effective text inserted, with the
// candidate's CursorOffset applied. If no valid trigger span can be
// located the input is returned unchanged.
func Apply(text string, cursor int, c Completion, trigger string) (string, int) {
	if cursor < 0 || cursor > len(text) {
		return text, cursor
	}

	if len(trigger) > 0 && (trigger[0] == '\'' || trigger[0] == '"') {
		if newText, newCursor, ok := replaceInString(text, cursor, trigger[0], c.Text()); ok {
			return newText, newCursor
		}
	}

	start := cursor - len(trigger)
	if start < 0 {
		return text, cursor
	}

	inserted := c.Text()
	newText := text[:start] + inserted + text[cursor:]
	return newText, start + len(inserted) + c.CursorOffset
}

// replaceInString swaps the content between the enclosing unescaped
// quote pair for the completion text, stripped of its own quotes. The
// closing quote must sit at or after the cursor.
func replaceInString(text string, cursor int, quote byte, inserted string) (string, int, bool) {
	open := -1
	for i := cursor - 1; i >= 0 && text[i] != '\n'; i-- {
		if text[i] == quote && !escaped(text, i) {
			open = i
			break
		}
	}
	if open < 0 {
		return "", 0, false
	}

	closing := -1
	for i := cursor; i < len(text) && text[i] != '\n'; i++ {
		if text[i] == quote && !escaped(text, i) {
			closing = i
			break
		}
	}
	if closing < 0 {
		return "", 0, false
	}

	content := strings.Trim(inserted, `'"`)
	newText := text[:open+1] + content + text[closing:]
	return newText, open + 1 + len(content), true
}
