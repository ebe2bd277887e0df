// Package flow resolves which questions of a flow are currently active and
// validates answers before they reach the answer store.
package flow

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/finquest/internal/catalog"
	"github.com/theirongolddev/finquest/internal/model"
)

// Validation errors. The answer store is never touched when one is returned.
var (
	ErrNotNumeric    = errors.New("value is not a number")
	ErrBelowMinimum  = errors.New("value is below the minimum")
	ErrUnknownOption = errors.New("value is not one of the options")
)

// ActiveQuestions filters flow down to the questions visible under answers,
// preserving catalog order. It is a full rescan on every call.
func ActiveQuestions(flow []model.QuestionSpec, answers catalog.Answers) []model.QuestionSpec {
	active := make([]model.QuestionSpec, 0, len(flow))
	for _, q := range flow {
		if catalog.IsVisible(q, answers) {
			active = append(active, q)
		}
	}
	return active
}

// Cursor is the position within an active question list. An index equal
// to the list length means the flow is complete.
type Cursor struct {
	index int
}

// At returns a cursor positioned at i, clamped to active.
func At(i int, active []model.QuestionSpec) Cursor {
	c := Cursor{index: i}
	c.Clamp(active)
	return c
}

// Index returns the cursor position.
func (c Cursor) Index() int { return c.index }

// Advance moves to the next question, never past the end of active.
func (c *Cursor) Advance(active []model.QuestionSpec) {
	c.index++
	c.Clamp(active)
}

// Clamp keeps the cursor within [0, len(active)] after the list changed.
func (c *Cursor) Clamp(active []model.QuestionSpec) {
	if c.index > len(active) {
		c.index = len(active)
	}
	if c.index < 0 {
		c.index = 0
	}
}

// Reset moves back to the first question.
func (c *Cursor) Reset() { c.index = 0 }

// Current returns the question under the cursor, or false once complete.
func (c Cursor) Current(active []model.QuestionSpec) (model.QuestionSpec, bool) {
	if c.index < 0 || c.index >= len(active) {
		return model.QuestionSpec{}, false
	}
	return active[c.index], true
}

// Done reports whether every active question has been passed.
func (c Cursor) Done(active []model.QuestionSpec) bool {
	return c.index >= len(active)
}

// Resume positions a cursor at the first active question without an
// answer, or at the end when all are answered.
func Resume(active []model.QuestionSpec, answers catalog.Answers) Cursor {
	for i, q := range active {
		if _, ok := answers.Value(q.ID); !ok {
			return Cursor{index: i}
		}
	}
	return Cursor{index: len(active)}
}

// Validate turns raw user input into an answer value for q. Numeric
// questions reject non-numbers and values under the resolved minimum;
// choice questions accept only listed option values.
func Validate(q model.QuestionSpec, raw string, answers catalog.Answers) (model.Value, error) {
	if q.Kind == model.KindChoice {
		o, ok := q.Option(model.Text(strings.TrimSpace(raw)))
		if !ok {
			return model.Value{}, ErrUnknownOption
		}
		return o.Value, nil
	}

	f, ok := ParseNumber(raw)
	if !ok {
		return model.Value{}, ErrNotNumeric
	}
	if f < catalog.ResolveBound(q, catalog.Min, answers) {
		return model.Value{}, ErrBelowMinimum
	}
	return model.Number(f), nil
}

// CanSubmit reports whether raw would be accepted for q.
func CanSubmit(q model.QuestionSpec, raw string, answers catalog.Answers) bool {
	_, err := Validate(q, raw, answers)
	return err == nil
}

// ParseNumber reads a number typed by a user, allowing digit grouping
// with commas, underscores or spaces.
func ParseNumber(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '_', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
