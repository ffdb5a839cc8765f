package suite

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// parseWithWarnings decodes a JSON manifest and returns unknown field warnings.
func parseWithWarnings(data []byte) (*Suite, []string, error) {
	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, nil, fmt.Errorf("failed to parse suite manifest: %w", err)
	}
	return &s, detectUnknownFields(data), nil
}

// detectUnknownFields compares raw JSON with known struct fields.
func detectUnknownFields(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse suite for unknown field detection"}
	}

	var warnings []string
	known := getJSONFields(reflect.TypeOf(Suite{}))
	for _, key := range sortedKeys(raw) {
		if key == "$schema" {
			continue
		}
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if testsRaw, ok := raw["tests"]; ok {
		warnings = append(warnings, checkEntriesUnknownFields(testsRaw)...)
	}

	return warnings
}

func checkEntriesUnknownFields(data json.RawMessage) []string {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return []string{"internal: failed to re-parse tests for unknown field detection"}
	}

	var warnings []string
	known := getJSONFields(reflect.TypeOf(Entry{}))
	for i, fields := range entries {
		label := fmt.Sprintf("#%d", i)
		if name, ok := fields["name"]; ok {
			var s string
			if json.Unmarshal(name, &s) == nil && s != "" {
				label = s
			}
		}
		for _, key := range sortedKeys(fields) {
			if !known[key] {
				warnings = append(warnings, fmt.Sprintf("unknown field %q in test %q (ignored)", key, label))
			}
		}
	}
	return warnings
}

// getJSONFields returns the set of JSON field names of a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			fields[name] = true
		}
	}
	return fields
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
