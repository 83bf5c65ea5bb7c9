package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/match-cli/internal/model"
)

func TestWritePairs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "matched.csv")

	pairs := []model.MatchPair{
		{
			BaseID: "1", CandidateID: "x",
			BaseKey: "acme.com", CandidateKey: "acme.com",
			Kind: model.MatchExact, Score: 1.0,
		},
	}
	require.NoError(t, WritePairs(path, pairs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "base_id,candidate_id,base_key,candidate_key,kind,score", lines[0])
	assert.Contains(t, lines[1], "acme.com")
	assert.Contains(t, lines[1], "exact")
}

func TestWritePairs_EmptyWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matched.csv")
	require.NoError(t, WritePairs(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 1)
}

func TestWriteRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unmatched.csv")

	rows := []model.RawRow{{ID: "1", URL: "zzzzz.com"}}
	require.NoError(t, WriteRows(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,url")
	assert.Contains(t, string(data), "1,zzzzz.com")
}
