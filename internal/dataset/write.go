package dataset

import (
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/match-cli/internal/model"
)

// WritePairs writes match pairs (canonical or duplicate) as CSV.
func WritePairs(path string, pairs []model.MatchPair) error {
	if pairs == nil {
		pairs = []model.MatchPair{} // header-only file, not an error
	}
	data, err := csvutil.Marshal(pairs)
	if err != nil {
		return eris.Wrapf(err, "dataset: marshal pairs for %s", path)
	}
	return writeFile(path, data, len(pairs))
}

// WriteRows writes raw rows (unmatched or unnormalizable) as CSV.
func WriteRows(path string, rows []model.RawRow) error {
	if rows == nil {
		rows = []model.RawRow{}
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrapf(err, "dataset: marshal rows for %s", path)
	}
	return writeFile(path, data, len(rows))
}

func writeFile(path string, data []byte, records int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "dataset: create output dir for %s", path)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: write %s", path)
	}
	zap.L().Info("dataset: wrote output",
		zap.String("path", path),
		zap.Int("records", records),
	)
	return nil
}
