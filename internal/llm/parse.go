package llm

import (
	"encoding/json"
	"strings"
)

// Strategy names the stage of ParseResponse that produced a value
type Strategy string

// Parse strategies, tried in this order
const (
	StrategyDirect        Strategy = "direct"
	StrategyFenceStrip    Strategy = "fence_strip"
	StrategyBalancedBlock Strategy = "balanced_block"
	StrategyRawText       Strategy = "raw_text"
)

// RawTextKey holds the trimmed response when nothing in it parses as JSON
const RawTextKey = "raw_text"

// maxBlockCandidates bounds the balanced-block stage on long prose responses
const maxBlockCandidates = 64

// ParseResult is the outcome of ParseResponse
type ParseResult struct {
	Value    any
	Strategy Strategy
}

// Object returns the value as a JSON object when it is one
func (r ParseResult) Object() (map[string]any, bool) {
	m, ok := r.Value.(map[string]any)
	return m, ok
}

// IsFallback reports whether the response could not be parsed at all
func (r ParseResult) IsFallback() bool {
	return r.Strategy == StrategyRawText
}

// RawText returns the preserved response text of a fallback result
func (r ParseResult) RawText() string {
	if m, ok := r.Object(); ok && r.IsFallback() {
		s, _ := m[RawTextKey].(string)
		return s
	}
	return ""
}

// ParseResponse turns raw model output into a JSON value. It never fails:
//  1. the whole text as JSON
//  2. the text with markdown fences (and language tag) removed
//  3. the first balanced {...} or [...] block that parses, scanning openers
//     in text order; braces inside string literals do not count
//  4. {"raw_text": trimmed text}
func ParseResponse(raw string) ParseResult {
	if v, ok := decode(raw); ok {
		return ParseResult{Value: v, Strategy: StrategyDirect}
	}

	trimmed := strings.TrimSpace(raw)
	if inner, fenced := stripFence(trimmed); fenced {
		if v, ok := decode(inner); ok {
			return ParseResult{Value: v, Strategy: StrategyFenceStrip}
		}
	}

	if v, ok := scanBlocks(raw); ok {
		return ParseResult{Value: v, Strategy: StrategyBalancedBlock}
	}

	return ParseResult{Value: map[string]any{RawTextKey: trimmed}, Strategy: StrategyRawText}
}

func scanBlocks(text string) (any, bool) {
	attempts := 0
	for i := 0; i < len(text) && attempts < maxBlockCandidates; i++ {
		var block string
		switch text[i] {
		case '{':
			block = extractJSONObject(text[i:])
		case '[':
			block = extractJSONArray(text[i:])
		default:
			continue
		}
		attempts++
		if block == "" {
			continue
		}
		if v, ok := decode(block); ok {
			return v, true
		}
	}
	return nil, false
}

func decode(text string) (any, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	return v, true
}
