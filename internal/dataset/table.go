// Package dataset loads source tables from CSV exports and writes match
// results back out. All I/O lives here; the matching core never sees a file.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-cli/internal/model"
)

// TableSpec describes how to read one dataset export: which columns carry
// the row identifier and the URL, plus optional header renames applied
// before column lookup (exports disagree on column naming across sources).
type TableSpec struct {
	Name      string            `yaml:"name"`
	Path      string            `yaml:"path"`
	IDColumn  string            `yaml:"id_column"`
	URLColumn string            `yaml:"url_column"`
	Rename    map[string]string `yaml:"rename,omitempty"`
}

// Validate checks the spec before any file is opened.
func (s TableSpec) Validate() error {
	if s.Path == "" {
		return eris.New("dataset: table path is required")
	}
	if s.IDColumn == "" || s.URLColumn == "" {
		return eris.Errorf("dataset: %s: id_column and url_column are required", s.Path)
	}
	return nil
}

// Load reads the CSV file named by the spec into an ordered table.
func Load(spec TableSpec) (*model.Table, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	f, err := os.Open(spec.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", spec.Path)
	}
	defer f.Close() //nolint:errcheck

	return Read(f, spec)
}

// Read parses CSV content into a table. The first record is the header;
// renames are applied to it before the id/url columns are located. Rows
// with a blank id or URL are dropped and counted, mirroring how null rows
// are excluded from matching upstream.
func Read(r io.Reader, spec TableSpec) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports are ragged more often than not

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.Errorf("dataset: %s: empty file", spec.Path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: %s: read header", spec.Path)
	}

	idCol, urlCol := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		if renamed, ok := spec.Rename[name]; ok {
			name = renamed
		}
		switch name {
		case spec.IDColumn:
			idCol = i
		case spec.URLColumn:
			urlCol = i
		}
	}
	if idCol < 0 || urlCol < 0 {
		return nil, eris.Errorf("dataset: %s: columns %q and %q not found in header",
			spec.Path, spec.IDColumn, spec.URLColumn)
	}

	table := &model.Table{Name: spec.Name}
	dropped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: %s: read row", spec.Path)
		}
		if idCol >= len(record) || urlCol >= len(record) {
			dropped++
			continue
		}
		id := strings.TrimSpace(record[idCol])
		url := strings.TrimSpace(record[urlCol])
		if id == "" || url == "" {
			dropped++
			continue
		}
		table.Rows = append(table.Rows, model.RawRow{ID: id, URL: url})
	}

	if dropped > 0 {
		zap.L().Warn("dataset: dropped rows with blank id or url",
			zap.String("path", spec.Path),
			zap.Int("dropped", dropped),
			zap.Int("kept", len(table.Rows)),
		)
	}

	return table, nil
}
