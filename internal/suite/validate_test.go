package suite

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		suite        Suite
		wantField    string
		wantWarnings []string
	}{
		{
			name: "valid",
			suite: Suite{Entries: []Entry{
				{Name: "a", Command: []string{"true"}},
				{Name: "a", Kind: "other", Command: []string{"true"}},
				{Name: "b", Command: []string{"true"}, Bench: true, Iterations: 2},
			}},
		},
		{
			name:      "empty name",
			suite:     Suite{Entries: []Entry{{Command: []string{"true"}}}},
			wantField: "tests[0].name",
		},
		{
			name:      "empty program",
			suite:     Suite{Entries: []Entry{{Name: "a", Command: []string{""}}}},
			wantField: "tests[0].command",
		},
		{
			name:      "negative iterations",
			suite:     Suite{Entries: []Entry{{Name: "a", Command: []string{"x"}, Bench: true, Iterations: -1}}},
			wantField: "tests[0].iterations",
		},
		{
			name: "duplicate",
			suite: Suite{Entries: []Entry{
				{Name: "a", Kind: "k", Command: []string{"true"}},
				{Name: "a", Kind: "k", Command: []string{"false"}},
			}},
			wantWarnings: []string{`tests[1]: duplicate test "[k] a" (first defined at tests[0])`},
		},
		{
			name:         "iterations on a test",
			suite:        Suite{Entries: []Entry{{Name: "a", Command: []string{"true"}, Iterations: 4}}},
			wantWarnings: []string{"tests[0]: iterations only apply to benches (ignored)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			warnings, err := Validate(&tt.suite)
			if tt.wantField != "" {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Validate() error = %v, want *ValidationError", err)
				}
				if ve.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
				}
				if !strings.HasPrefix(ve.Error(), tt.wantField+": ") {
					t.Errorf("Error() = %q", ve.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if strings.Join(warnings, "|") != strings.Join(tt.wantWarnings, "|") {
				t.Errorf("warnings = %q, want %q", warnings, tt.wantWarnings)
			}
		})
	}
}
