// Package answers holds the ordered, keyed collection of a plan's answers.
package answers

import (
	"encoding/json"

	"github.com/theirongolddev/finquest/internal/model"
)

// Store keeps answers in first-insertion order with at most one answer per
// question id. The zero value is an empty store ready to use.
type Store struct {
	items []model.Answer
	index map[string]int
}

// New returns a store seeded with the given answers. Later duplicates
// replace earlier ones.
func New(initial ...model.Answer) *Store {
	s := &Store{}
	for _, a := range initial {
		s.Upsert(a)
	}
	return s
}

// Upsert records a, replacing any answer with the same question id in
// place. It reports whether an existing answer was replaced.
func (s *Store) Upsert(a model.Answer) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[a.QuestionID]; ok {
		s.items[i] = a
		return true
	}
	s.index[a.QuestionID] = len(s.items)
	s.items = append(s.items, a)
	return false
}

// Get returns the answer for questionID.
func (s *Store) Get(questionID string) (model.Answer, bool) {
	if s == nil {
		return model.Answer{}, false
	}
	i, ok := s.index[questionID]
	if !ok {
		return model.Answer{}, false
	}
	return s.items[i], true
}

// Value returns the recorded value for questionID.
func (s *Store) Value(questionID string) (model.Value, bool) {
	a, ok := s.Get(questionID)
	return a.Value, ok
}

// Number returns the numeric value for questionID. Non-numeric answers
// report false.
func (s *Store) Number(questionID string) (float64, bool) {
	v, ok := s.Value(questionID)
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Has reports whether questionID has been answered.
func (s *Store) Has(questionID string) bool {
	_, ok := s.Get(questionID)
	return ok
}

// Len returns the number of answers.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// All returns a copy of the answers in insertion order.
func (s *Store) All() []model.Answer {
	if s == nil {
		return []model.Answer{}
	}
	out := make([]model.Answer, len(s.items))
	copy(out, s.items)
	return out
}

// Clone returns an independent copy of s.
func (s *Store) Clone() *Store {
	return New(s.All()...)
}

// MarshalJSON encodes the store as an array of answers.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.All())
}

// UnmarshalJSON replaces the contents of s with the decoded answers.
func (s *Store) UnmarshalJSON(data []byte) error {
	var list []model.Answer
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = *New(list...)
	return nil
}
