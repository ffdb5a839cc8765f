// Package suite loads suite manifests: YAML or JSON files that describe
// external commands to be run as test units.
package suite

// Default manifest names, tried in order when no path is given.
const (
	DefaultManifest         = "mimic.yaml"
	DefaultManifestFallback = "mimic.json"
)

// DefaultIterations is the number of timed runs for a bench without
// an explicit iteration count.
const DefaultIterations = 10

// Suite is a parsed suite manifest.
type Suite struct {
	Entries []Entry `json:"tests"`

	// dir is the directory containing the manifest. Relative entry
	// directories are resolved against it.
	dir string
}

// Entry describes one command unit.
type Entry struct {
	Name       string            `json:"name"`
	Kind       string            `json:"kind,omitempty"`
	Command    []string          `json:"command"`
	Dir        string            `json:"dir,omitempty"`
	Env        map[string]string `json:"env,omitempty"`
	Ignored    bool              `json:"ignored,omitempty"`
	Bench      bool              `json:"bench,omitempty"`
	Iterations int               `json:"iterations,omitempty"`
}
