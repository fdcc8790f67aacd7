package parser

import (
	"encoding/json"
	"strings"

	"github.com/archsketch-ai/engine"
)

// ExtractJSON locates the first complete JSON object or array in text and
// returns it as raw bytes. Fenced code blocks are unwrapped first, then the
// remaining text is scanned for a balanced candidate.
//
// Returns engine.ErrNoJSONFound when nothing locatable parses as JSON.
func ExtractJSON(text string) (json.RawMessage, error) {
	candidate := stripFence(text)

	if raw := scanBalanced(candidate); raw != nil {
		return raw, nil
	}

	// The fence content may have been prose around the payload, or the fence
	// markers themselves may be malformed. Fall back to the full input.
	if candidate != text {
		if raw := scanBalanced(text); raw != nil {
			return raw, nil
		}
	}

	return nil, engine.ErrNoJSONFound
}

// stripFence unwraps the first fenced code block, tolerating an optional
// language label ("```json" or bare "```"). Input without a closed fence is
// returned unchanged.
func stripFence(text string) string {
	start := strings.Index(text, "```")
	if start < 0 {
		return text
	}

	rest := text[start+3:]

	// Drop the language label, if any, up to the end of the opening line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		return text
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return text
	}

	return rest[:end]
}

// scanBalanced walks text looking for a '{' or '[' opener and matches
// delimiters until the opener is balanced. String literals and escape
// sequences are honored, so a "}" inside a string value does not close an
// object. Each balanced candidate is checked with json.Valid; an invalid
// candidate moves the scan past its opener and tries again.
func scanBalanced(text string) json.RawMessage {
	for from := 0; from < len(text); {
		start := indexOpener(text, from)
		if start < 0 {
			return nil
		}

		end := matchDelimiters(text, start)
		if end > start {
			candidate := text[start:end]
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate)
			}
		}

		from = start + 1
	}
	return nil
}

// indexOpener returns the position of the first '{' or '[' at or after from,
// or -1 if neither occurs.
func indexOpener(text string, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == '{' || text[i] == '[' {
			return i
		}
	}
	return -1
}

// matchDelimiters returns the index one past the delimiter that balances the
// opener at start, or -1 if the text ends before the opener is balanced.
func matchDelimiters(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}
