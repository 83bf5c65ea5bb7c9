package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/match-cli/internal/model"
	"github.com/sells-group/match-cli/internal/normalize"
)

func TestBuild_Empty(t *testing.T) {
	idx := Build(nil, normalize.KindDomain)
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0, idx.Total())
	assert.Empty(t, idx.Unnormalizable())
}

func TestBuild_GroupsByKey(t *testing.T) {
	rows := []model.RawRow{
		{ID: "1", URL: "https://www.acme.com/about"},
		{ID: "2", URL: "acme.com/careers"},
		{ID: "3", URL: "https://globex.io"},
	}
	idx := Build(rows, normalize.KindDomain)

	require.Equal(t, 2, idx.Len())
	assert.Equal(t, []string{"acme.com", "globex.io"}, idx.Keys())

	bucket := idx.Rows("acme.com")
	require.Len(t, bucket, 2)
	assert.Equal(t, "1", bucket[0].ID)
	assert.Equal(t, "2", bucket[1].ID)
}

func TestBuild_KeyOrderIsFirstOccurrence(t *testing.T) {
	rows := []model.RawRow{
		{ID: "1", URL: "zeta.com"},
		{ID: "2", URL: "alpha.com"},
		{ID: "3", URL: "zeta.com/x"},
	}
	idx := Build(rows, normalize.KindDomain)
	assert.Equal(t, []string{"zeta.com", "alpha.com"}, idx.Keys())
}

func TestBuild_UnnormalizableTracked(t *testing.T) {
	rows := []model.RawRow{
		{ID: "1", URL: "acme.com"},
		{ID: "2", URL: ""},
		{ID: "3", URL: "not a url"},
	}
	idx := Build(rows, normalize.KindDomain)

	assert.Equal(t, 1, idx.Len())
	require.Len(t, idx.Unnormalizable(), 2)
	assert.Equal(t, "2", idx.Unnormalizable()[0].ID)
	assert.Equal(t, "3", idx.Unnormalizable()[1].ID)
}

func TestBuild_AccountingInvariant(t *testing.T) {
	rows := []model.RawRow{
		{ID: "1", URL: "acme.com"},
		{ID: "2", URL: "acme.com"},
		{ID: "3", URL: "globex.io"},
		{ID: "4", URL: ""},
	}
	idx := Build(rows, normalize.KindDomain)

	bucketed := 0
	for _, key := range idx.Keys() {
		bucketed += len(idx.Rows(key))
	}
	assert.Equal(t, idx.Total(), bucketed+len(idx.Unnormalizable()))
}

func TestBuild_LinkedInKind(t *testing.T) {
	rows := []model.RawRow{
		{ID: "1", URL: "https://linkedin.com/company/acme-corp"},
		{ID: "2", URL: "https://www.linkedin.com/company/Acme-Corp/about/"},
	}
	idx := Build(rows, normalize.KindLinkedIn)
	require.Equal(t, 1, idx.Len())
	assert.Len(t, idx.Rows("acme-corp"), 2)
}

func TestIndex_Has(t *testing.T) {
	idx := Build([]model.RawRow{{ID: "1", URL: "acme.com"}}, normalize.KindDomain)
	assert.True(t, idx.Has("acme.com"))
	assert.False(t, idx.Has("globex.io"))
}
