package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempRatingStore(t *testing.T) *RatingStore {
	t.Helper()
	return NewRatingStore(filepath.Join(t.TempDir(), "ratings.json"))
}

func TestRatingStore_UnknownTopicDefaults(t *testing.T) {
	s := tempRatingStore(t)
	assert.Equal(t, 1200.0, s.Get("unknown"))
}

func TestRatingStore_RoundTrip(t *testing.T) {
	s := tempRatingStore(t)

	require.NoError(t, s.Put("Literary Theory", 1337))
	assert.Equal(t, 1337.0, s.Get("Literary Theory"))

	// Overwrite.
	require.NoError(t, s.Put("Literary Theory", 1305))
	assert.Equal(t, 1305.0, s.Get("Literary Theory"))
}

func TestRatingStore_PutPreservesOtherTopics(t *testing.T) {
	s := tempRatingStore(t)

	require.NoError(t, s.Put("physics", 1450))
	require.NoError(t, s.Put("history.pdf", 1180))
	require.NoError(t, s.Put("physics", 1482))

	assert.Equal(t, 1482.0, s.Get("physics"))
	assert.Equal(t, 1180.0, s.Get("history.pdf"))
}

func TestRatingStore_NegativeRatings(t *testing.T) {
	s := tempRatingStore(t)
	require.NoError(t, s.Put("rough day", -42))
	assert.Equal(t, -42.0, s.Get("rough day"))
}

func TestRatingStore_CorruptFileDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewRatingStore(path)
	assert.Equal(t, 1200.0, s.Get("anything"))

	// A Put on top of corruption starts a fresh map rather than failing.
	require.NoError(t, s.Put("anything", 1250))
	assert.Equal(t, 1250.0, s.Get("anything"))
}

func TestRatingStore_Topics(t *testing.T) {
	s := tempRatingStore(t)
	require.NoError(t, s.Put("a", 1300))
	require.NoError(t, s.Put("b", 1100))

	topics := s.Topics()
	assert.Equal(t, map[string]float64{"a": 1300, "b": 1100}, topics)
}

func TestRatingStore_Delete(t *testing.T) {
	s := tempRatingStore(t)
	require.NoError(t, s.Put("a", 1300))
	require.NoError(t, s.Put("b", 1100))
	require.NoError(t, s.Delete("a"))

	assert.Equal(t, 1200.0, s.Get("a"))
	assert.Equal(t, 1100.0, s.Get("b"))
}

func TestRatingStore_FileFormat(t *testing.T) {
	// The on-disk shape is {"topic": {"elo": N}}, kept stable so data
	// files survive upgrades.
	dir := t.TempDir()
	path := filepath.Join(dir, "ratings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"calculus":{"elo":1520}}`), 0o644))

	s := NewRatingStore(path)
	assert.Equal(t, 1520.0, s.Get("calculus"))
}
