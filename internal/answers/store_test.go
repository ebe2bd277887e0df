package answers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finquest/internal/model"
)

func answer(id string, v model.Value) model.Answer {
	return model.Answer{QuestionID: id, Value: v, Label: v.String()}
}

func TestUpsertReplacesByID(t *testing.T) {
	s := New()
	assert.False(t, s.Upsert(answer("monthly_income", model.Number(30000))))
	assert.False(t, s.Upsert(answer("monthly_expenses", model.Number(20000))))
	assert.True(t, s.Upsert(answer("monthly_income", model.Number(45000))))

	require.Equal(t, 2, s.Len())
	got, ok := s.Number("monthly_income")
	require.True(t, ok)
	assert.Equal(t, 45000.0, got)

	// Replacement keeps the original position.
	all := s.All()
	assert.Equal(t, "monthly_income", all[0].QuestionID)
	assert.Equal(t, "monthly_expenses", all[1].QuestionID)
}

func TestNewDeduplicates(t *testing.T) {
	s := New(
		answer("current_age", model.Number(30)),
		answer("current_age", model.Number(41)),
	)
	require.Equal(t, 1, s.Len())
	got, _ := s.Number("current_age")
	assert.Equal(t, 41.0, got)
}

func TestZeroValueStore(t *testing.T) {
	var s Store
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("x"))
	s.Upsert(answer("x", model.Text("y")))
	assert.True(t, s.Has("x"))

	var nilStore *Store
	assert.Equal(t, 0, nilStore.Len())
	_, ok := nilStore.Value("x")
	assert.False(t, ok)
	assert.NotNil(t, nilStore.All())
}

func TestNumberRejectsText(t *testing.T) {
	s := New(answer("current_savings", model.Text("manual")))
	_, ok := s.Number("current_savings")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	s := New(answer("a", model.Number(1)))
	all := s.All()
	all[0].Value = model.Number(99)
	got, _ := s.Number("a")
	assert.Equal(t, 1.0, got)
}

func TestJSONRoundTrip(t *testing.T) {
	s := New(
		answer("income_stability", model.Text("mixed")),
		answer("avg_income", model.Number(25000)),
	)
	data, err := json.Marshal(s)
	require.NoError(t, err)

	back := &Store{}
	require.NoError(t, json.Unmarshal(data, back))
	assert.Equal(t, s.All(), back.All())
}
