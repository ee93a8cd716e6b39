package qagen

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"interview-agent/internal/domain"
)

// Outcome tags the result of normalizing a model response.
type Outcome int

const (
	// Parsed means a JSON object was found and its levels were read.
	Parsed Outcome = iota
	// Unparseable means no usable JSON object was found. The set is empty.
	Unparseable
)

func (o Outcome) String() string {
	if o == Parsed {
		return "parsed"
	}
	return "unparseable"
}

// ParseResult is the normalized form of a raw model response.
// Set always carries all three levels, possibly empty.
type ParseResult struct {
	Outcome Outcome
	Set     domain.QASet
	Reason  string
}

var (
	thinkBlock = regexp.MustCompile(`(?is)<think>.*?</think>`)
	codeFence  = regexp.MustCompile("```[a-zA-Z]*")
)

var levelAliases = map[string]domain.Level{
	"basic":        domain.LevelBasic,
	"beginner":     domain.LevelBasic,
	"intermediate": domain.LevelIntermediate,
	"expert":       domain.LevelExpert,
	"advanced":     domain.LevelExpert,
}

var wrapperKeys = []string{"levels", "qa", "questions", "data", "result"}

// ParseQASet extracts a three-level question/answer set from free-form model output.
func ParseQASet(raw string) ParseResult {
	cleaned := thinkBlock.ReplaceAllString(raw, "")
	cleaned = codeFence.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	obj, reason := firstObject(cleaned)
	if obj == nil {
		return unparseable(reason)
	}

	if !hasLevelKey(obj) {
		if inner, ok := unwrap(obj); ok {
			obj = inner
		}
	}
	if !hasLevelKey(obj) {
		return unparseable("no difficulty level keys found")
	}

	set := domain.NewEmptyQASet()
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		level, ok := levelAliases[k]
		if !ok {
			continue
		}
		pairs := append(set.ByLevel(level), decodePairs(obj[k])...)
		set.Set(level, pairs)
	}

	return ParseResult{Outcome: Parsed, Set: set}
}

func unparseable(reason string) ParseResult {
	return ParseResult{Outcome: Unparseable, Set: domain.NewEmptyQASet(), Reason: reason}
}

// firstObject returns the first JSON object in text that carries level keys,
// directly or under a wrapper key. Bytes after a complete object are ignored.
// Failing that it returns the first object that decodes at all.
func firstObject(text string) (map[string]json.RawMessage, string) {
	var fallback map[string]json.RawMessage
	reason := "no JSON object found"
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&raw); err != nil {
			if fallback == nil && reason == "no JSON object found" {
				reason = "invalid JSON: " + err.Error()
			}
			continue
		}
		obj := lowerKeys(raw)
		if hasLevelKey(obj) {
			return obj, ""
		}
		if inner, ok := unwrap(obj); ok && hasLevelKey(inner) {
			return obj, ""
		}
		if fallback == nil {
			fallback = obj
		}
	}
	if fallback != nil {
		return fallback, ""
	}
	return nil, reason
}

// decodeObject decodes a JSON object and lower-cases its keys.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return lowerKeys(raw), nil
}

// lowerKeys folds keys to lower case. When two keys fold together the one
// already in lower case wins, otherwise the first in sorted order.
func lowerKeys(raw map[string]json.RawMessage) map[string]json.RawMessage {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := make(map[string]json.RawMessage, len(raw))
	for _, k := range keys {
		folded := strings.ToLower(strings.TrimSpace(k))
		if _, taken := obj[folded]; taken && k != folded {
			continue
		}
		obj[folded] = raw[k]
	}
	return obj
}

func hasLevelKey(obj map[string]json.RawMessage) bool {
	for k := range obj {
		if _, ok := levelAliases[k]; ok {
			return true
		}
	}
	return false
}

func unwrap(obj map[string]json.RawMessage) (map[string]json.RawMessage, bool) {
	for _, key := range wrapperKeys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		inner, err := decodeObject(v)
		if err == nil {
			return inner, true
		}
	}
	return nil, false
}

// decodePairs reads a level value. Anything that is not a list of objects yields no pairs.
func decodePairs(data json.RawMessage) []domain.QAPair {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	pairs := make([]domain.QAPair, 0, len(items))
	for _, item := range items {
		fields, err := decodeObject(item)
		if err != nil {
			continue
		}
		question := firstString(fields, "question", "q")
		if question == "" {
			continue
		}
		pairs = append(pairs, domain.QAPair{
			Question: question,
			Answer:   firstString(fields, "answer", "a"),
		})
	}
	return pairs
}

func firstString(fields map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
