package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/sharpen/internal/rating"
)

// topicRecord is the on-disk shape of one topic's entry. The map keyed
// by topic name leaves room for future per-topic fields beside the
// rating.
type topicRecord struct {
	Elo float64 `json:"elo"`
}

// RatingStore persists one rating per topic in a single JSON file.
// The whole map is read on Get and rewritten on Put. Single-user,
// single-process: no locking, but writes go through a temp file and
// rename so a failed write never truncates existing ratings.
type RatingStore struct {
	path string
}

// NewRatingStore creates a RatingStore backed by the file at path.
// The file is created lazily on the first Put.
func NewRatingStore(path string) *RatingStore {
	return &RatingStore{path: path}
}

// Get returns the stored rating for topic, or the default rating if
// the topic is unknown or the file is missing or unreadable. Corrupt
// storage is deliberately swallowed: the user starts fresh at 1200
// rather than being locked out of their data directory.
func (s *RatingStore) Get(topic string) float64 {
	data, err := s.read()
	if err != nil {
		return rating.Default
	}
	rec, ok := data[topic]
	if !ok {
		return rating.Default
	}
	return rec.Elo
}

// Put stores the rating for topic, preserving every other topic's
// entry (read-modify-write of the full map).
func (s *RatingStore) Put(topic string, r float64) error {
	data, err := s.read()
	if err != nil {
		data = map[string]topicRecord{}
	}
	data[topic] = topicRecord{Elo: r}
	return s.write(data)
}

// Topics returns every stored topic with its rating. Missing or
// corrupt storage yields an empty map.
func (s *RatingStore) Topics() map[string]float64 {
	out := map[string]float64{}
	data, err := s.read()
	if err != nil {
		return out
	}
	for topic, rec := range data {
		out[topic] = rec.Elo
	}
	return out
}

// Delete removes the entry for topic, if present.
func (s *RatingStore) Delete(topic string) error {
	data, err := s.read()
	if err != nil {
		return nil
	}
	if _, ok := data[topic]; !ok {
		return nil
	}
	delete(data, topic)
	return s.write(data)
}

func (s *RatingStore) read() (map[string]topicRecord, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var data map[string]topicRecord
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RatingStore) write(data map[string]topicRecord) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal ratings: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".ratings-*.json")
	if err != nil {
		return fmt.Errorf("create temp ratings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write ratings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close ratings file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ratings file: %w", err)
	}
	return nil
}
