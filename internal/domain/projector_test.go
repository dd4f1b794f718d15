package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestProjectFiltersBySubstring(t *testing.T) {
	records := []Record{
		rec("1", "my cat sleeps", 2),
		rec("2", "dog park", 1),
		rec("3", "catalog of things", 0),
		rec("4", "Cat with a capital", 3),
	}

	got := Project(records, "cat")

	// Substring match is case-sensitive: "Cat" does not match.
	assert.Equal(t, []string{"3", "1"}, ids(got))
}

func TestProjectEmptyTermKeepsEverything(t *testing.T) {
	records := []Record{
		rec("2", "b", 1),
		rec("1", "a", 0),
		rec("3", "c", 2),
	}

	got := Project(records, "")

	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestProjectOrdersAscendingByCreatedAt(t *testing.T) {
	records := []Record{
		rec("late", "noodle", 30),
		rec("early", "noodle", 1),
		rec("middle", "noodle", 15),
	}

	got := Project(records, "noodle")

	assert.Equal(t, []string{"early", "middle", "late"}, ids(got))
}

func TestProjectBreaksTimestampTiesByID(t *testing.T) {
	records := []Record{
		rec("b", "x", 5),
		rec("a", "x", 5),
		rec("c", "x", 5),
	}

	got := Project(records, "")
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))

	// Deterministic for identical inputs regardless of input order.
	again := Project([]Record{records[2], records[0], records[1]}, "")
	assert.Equal(t, ids(got), ids(again))
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	records := []Record{
		rec("2", "noodle", 1),
		rec("1", "noodle", 0),
	}

	_ = Project(records, "noodle")

	require.Equal(t, "2", records[0].ID)
	require.Equal(t, "1", records[1].ID)
}

func TestProjectZeroTimesSortFirst(t *testing.T) {
	records := []Record{
		rec("dated", "x", 1),
		{ID: "undated", Text: "x"},
	}

	got := Project(records, "")
	assert.Equal(t, []string{"undated", "dated"}, ids(got))
}

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  Noodle  ", "noodle"},
		{"RAMEN", "ramen"},
		{"", ""},
		{"   ", ""},
		{"two words", "two words"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTerm(tt.raw), "raw=%q", tt.raw)
	}
}

func TestProjectTimeZonesCompareByInstant(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	records := []Record{
		{ID: "utc", Text: "x", CreatedAt: time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "est", Text: "x", CreatedAt: time.Date(2020, 6, 1, 6, 0, 0, 0, est)}, // 11:00 UTC
	}

	got := Project(records, "")
	assert.Equal(t, []string{"est", "utc"}, ids(got))
}
