// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

const fence = "```"

// CleanJSONBlock removes markdown code fences and surrounding prose from a JSON
// response. LLMs often wrap JSON in ```json ... ``` blocks or add a preamble
// even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if inner, ok := stripFence(text); ok {
		return inner
	}
	if block := findJSONBlock(text); block != "" {
		return block
	}
	return text
}

// stripFence removes an opening fence with its optional language tag and the
// closing fence. ok is false when text does not start with a fence.
func stripFence(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text, false
	}
	text = strings.TrimPrefix(text, fence)

	// Skip a language identifier on the first line (```json, ```javascript)
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[\"") {
			text = text[idx+1:]
		}
	} else if tag := leadingWord(text); tag != "" && !strings.ContainsAny(tag, "{[\"") {
		text = strings.TrimPrefix(text, tag)
	}

	if idx := strings.LastIndex(text, fence); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text), true
}

func leadingWord(text string) string {
	if end := strings.IndexAny(text, " \t{["); end > 0 {
		return text[:end]
	}
	return ""
}

// findJSONBlock returns the first balanced object or array in text
func findJSONBlock(text string) string {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			if block := extractJSONObject(text[i:]); block != "" {
				return block
			}
		case '[':
			if block := extractJSONArray(text[i:]); block != "" {
				return block
			}
		}
	}
	return ""
}

// extractJSONObject returns the balanced {...} prefix of text, or "" when text
// does not start with '{' or the braces never balance.
func extractJSONObject(text string) string {
	return balancedPrefix(text, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of text
func extractJSONArray(text string) string {
	return balancedPrefix(text, '[', ']')
}

// balancedPrefix tracks nesting depth of open/close outside string literals.
// Escaped quotes inside strings do not end the literal.
func balancedPrefix(text string, open, close byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
