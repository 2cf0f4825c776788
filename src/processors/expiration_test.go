package processors

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/benefitpass/backend/src/logger"
	"github.com/username/benefitpass/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func midnightUTC(value string) int64 {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t.Unix()
}

func TestNormalizeExpireDate(t *testing.T) {
	c := NormalizeExpireDate("2024-10-15", "15 october 2024")
	require.NotNil(t, c)
	assert.Equal(t, midnightUTC("2024-10-15"), c.Unix)
	assert.Equal(t, "15 october 2024", c.Locale, "display text must pass through unmodified")
}

func TestNormalizeExpireDate_Absent(t *testing.T) {
	assert.Nil(t, NormalizeExpireDate("", ""), "empty date is no candidate, not an error")
}

func TestNormalizeExpireDate_Malformed(t *testing.T) {
	assert.Nil(t, NormalizeExpireDate("15/10/2024", "15 october 2024"))
	assert.Nil(t, NormalizeExpireDate("soon", ""))
}

func TestResolveExpireDate_AscendingPicksSoonest(t *testing.T) {
	candidates := []*models.DateCandidate{
		{Unix: 300, Locale: "c"},
		{Unix: 100, Locale: "a"},
		{Unix: 200, Locale: "b"},
	}
	resolved := ResolveExpireDate(candidates, Ascending)
	require.NotNil(t, resolved)
	assert.Equal(t, int64(100), resolved.Unix)
	assert.Equal(t, "a", resolved.Locale)
}

func TestResolveExpireDate_DescendingPicksLatest(t *testing.T) {
	candidates := []*models.DateCandidate{
		{Unix: 300, Locale: "c"},
		{Unix: 100, Locale: "a"},
		{Unix: 200, Locale: "b"},
	}
	resolved := ResolveExpireDate(candidates, Descending)
	require.NotNil(t, resolved)
	assert.Equal(t, int64(300), resolved.Unix)
}

func TestResolveExpireDate_SkipsNilCandidates(t *testing.T) {
	candidates := []*models.DateCandidate{
		nil,
		{Unix: 200, Locale: "b"},
		nil,
	}
	resolved := ResolveExpireDate(candidates, Ascending)
	require.NotNil(t, resolved)
	assert.Equal(t, int64(200), resolved.Unix)
}

func TestResolveExpireDate_AllAbsent(t *testing.T) {
	assert.Nil(t, ResolveExpireDate(nil, Ascending))
	assert.Nil(t, ResolveExpireDate([]*models.DateCandidate{nil, nil}, Ascending))
}

func TestResolveExpireDate_TiesKeepInputOrder(t *testing.T) {
	candidates := []*models.DateCandidate{
		{Unix: 100, Locale: "first"},
		{Unix: 100, Locale: "second"},
	}
	resolved := ResolveExpireDate(candidates, Ascending)
	require.NotNil(t, resolved)
	assert.Equal(t, "first", resolved.Locale)

	resolved = ResolveExpireDate(candidates, Descending)
	require.NotNil(t, resolved)
	assert.Equal(t, "first", resolved.Locale)
}
