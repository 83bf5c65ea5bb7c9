// Package manifest describes a sequence of dataset-pair matching operations
// declared in YAML.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/match-cli/internal/dataset"
	"github.com/sells-group/match-cli/internal/match"
	"github.com/sells-group/match-cli/internal/normalize"
)

// Output names the files one operation writes.
type Output struct {
	Matched    string `yaml:"matched"`
	Unmatched  string `yaml:"unmatched"`
	Duplicates string `yaml:"duplicates,omitempty"`
}

// Operation is one base-vs-candidate matching run.
type Operation struct {
	Name      string            `yaml:"name"`
	Base      dataset.TableSpec `yaml:"base"`
	Candidate dataset.TableSpec `yaml:"candidate"`
	Kind      string            `yaml:"kind,omitempty"`      // default "domain"
	Mode      string            `yaml:"mode,omitempty"`      // default "exact_then_fuzzy"
	Threshold int               `yaml:"threshold,omitempty"` // fuzzy edit-distance budget
	Output    Output            `yaml:"output"`

	// FallbackOf restricts base input to rows a prior operation left
	// unmatched, e.g. rematching website-unmatched companies by their
	// LinkedIn URLs.
	FallbackOf string `yaml:"fallback_of,omitempty"`
}

// NormKind returns the operation's parsed normalization kind.
func (o Operation) NormKind() (normalize.Kind, error) {
	if o.Kind == "" {
		return normalize.KindDomain, nil
	}
	return normalize.ParseKind(o.Kind)
}

// MatchMode returns the operation's parsed match mode.
func (o Operation) MatchMode() (match.Mode, error) {
	if o.Mode == "" {
		return match.ModeExactThenFuzzy, nil
	}
	return match.ParseMode(o.Mode)
}

// DuplicatesPath returns the configured duplicates output, deriving
// "<dir>/duplicate_<file>" from the matched path when unset.
func (o Operation) DuplicatesPath() string {
	if o.Output.Duplicates != "" {
		return o.Output.Duplicates
	}
	dir, file := filepath.Split(o.Output.Matched)
	return dir + "duplicate_" + file
}

// Manifest is an ordered list of matching operations.
type Manifest struct {
	Operations []Operation `yaml:"operations"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "manifest: read %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrapf(err, "manifest: parse %s", path)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every operation before any of them run.
func (m *Manifest) Validate() error {
	if len(m.Operations) == 0 {
		return eris.New("manifest: no operations defined")
	}
	seen := make(map[string]bool, len(m.Operations))
	for i, op := range m.Operations {
		if strings.TrimSpace(op.Name) == "" {
			return eris.Errorf("manifest: operation %d has no name", i)
		}
		if seen[op.Name] {
			return eris.Errorf("manifest: duplicate operation name %q", op.Name)
		}
		if err := op.Base.Validate(); err != nil {
			return eris.Wrapf(err, "manifest: operation %q base", op.Name)
		}
		if err := op.Candidate.Validate(); err != nil {
			return eris.Wrapf(err, "manifest: operation %q candidate", op.Name)
		}
		if _, err := op.NormKind(); err != nil {
			return eris.Wrapf(err, "manifest: operation %q", op.Name)
		}
		if _, err := op.MatchMode(); err != nil {
			return eris.Wrapf(err, "manifest: operation %q", op.Name)
		}
		if op.Threshold < 0 {
			return eris.Errorf("manifest: operation %q: negative threshold %d", op.Name, op.Threshold)
		}
		if op.Output.Matched == "" || op.Output.Unmatched == "" {
			return eris.Errorf("manifest: operation %q: matched and unmatched outputs are required", op.Name)
		}
		if op.FallbackOf != "" && !seen[op.FallbackOf] {
			return eris.Errorf("manifest: operation %q: fallback_of %q must name an earlier operation",
				op.Name, op.FallbackOf)
		}
		seen[op.Name] = true
	}
	return nil
}
