package suite

import (
	"reflect"
	"testing"
)

func TestDetectUnknownFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "none",
			data: `{"$schema": "x", "tests": [{"name": "a", "command": ["true"]}]}`,
			want: nil,
		},
		{
			name: "root",
			data: `{"tests": [], "version": 2, "extra": true}`,
			want: []string{
				`unknown field "extra" at root level (ignored)`,
				`unknown field "version" at root level (ignored)`,
			},
		},
		{
			name: "entry",
			data: `{"tests": [{"name": "a", "command": ["true"], "timeout": 5}, {"command": ["x"], "cwd": "."}]}`,
			want: []string{
				`unknown field "timeout" in test "a" (ignored)`,
				`unknown field "cwd" in test "#1" (ignored)`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := detectUnknownFields([]byte(tt.data))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("detectUnknownFields() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_UnknownFieldWarnings(t *testing.T) {
	t.Parallel()

	s, warnings, err := Parse("suite.yaml", []byte("tests:\n  - name: a\n    command: [\"true\"]\n    retries: 3\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(s.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(s.Entries))
	}
	want := []string{`unknown field "retries" in test "a" (ignored)`}
	if !reflect.DeepEqual(warnings, want) {
		t.Errorf("warnings = %q, want %q", warnings, want)
	}
}

func TestGetJSONFields(t *testing.T) {
	t.Parallel()

	fields := getJSONFields(reflect.TypeOf(Entry{}))
	for _, name := range []string{"name", "kind", "command", "dir", "env", "ignored", "bench", "iterations"} {
		if !fields[name] {
			t.Errorf("getJSONFields(Entry) missing %q", name)
		}
	}
	if fields["dir,omitempty"] {
		t.Error("getJSONFields() kept tag options")
	}
}
