package suite

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	mimicerrors "github.com/AndreyAkinshin/mimic/internal/errors"
	"github.com/AndreyAkinshin/mimic/internal/schema"
)

// Load reads a manifest, validates it against the suite schema, applies
// defaults and runs semantic validation. Warnings cover unknown fields and
// other non-fatal issues.
func Load(path string) (*Suite, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, mimicerrors.NotFound("suite manifest", path)
		}
		return nil, nil, mimicerrors.Wrap(err, "failed to read suite manifest")
	}

	s, warnings, err := Parse(path, data)
	if err != nil {
		return nil, warnings, err
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, warnings, mimicerrors.Environmentf("cannot resolve suite directory: %v", err)
	}
	s.dir = abs

	return s, warnings, nil
}

// Parse decodes manifest data. The path is only used to choose between
// YAML and JSON by extension, and in messages.
func Parse(path string, data []byte) (*Suite, []string, error) {
	jsonData, err := toJSON(path, data)
	if err != nil {
		return nil, nil, err
	}

	if err := schema.ValidateSuite(jsonData); err != nil {
		return nil, nil, mimicerrors.Configf("%s: %v", path, err)
	}

	s, unknownWarnings, err := parseWithWarnings(jsonData)
	if err != nil {
		return nil, nil, mimicerrors.Configf("%s: %v", path, err)
	}

	applyDefaults(s)

	validationWarnings, err := Validate(s)

	warnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	warnings = append(warnings, unknownWarnings...)
	warnings = append(warnings, validationWarnings...)

	if err != nil {
		return nil, warnings, mimicerrors.Validation(path, err)
	}

	return s, warnings, nil
}

// Find returns the manifest to use when none was given explicitly:
// DefaultManifest in dir, else DefaultManifestFallback.
func Find(dir string) (string, error) {
	for _, name := range []string{DefaultManifest, DefaultManifestFallback} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", mimicerrors.NotFound("suite manifest", filepath.Join(dir, DefaultManifest))
}

// toJSON normalizes a manifest to JSON. YAML documents are decoded
// generically and re-encoded.
func toJSON(path string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return data, nil
	case ".yaml", ".yml", "":
	default:
		return nil, mimicerrors.Configf("%s: unsupported manifest extension %q (want .yaml, .yml or .json)", path, filepath.Ext(path))
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, mimicerrors.Configf("%s: invalid YAML: %v", path, err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, mimicerrors.Configf("%s: unsupported YAML content: %v", path, err)
	}
	return out, nil
}
