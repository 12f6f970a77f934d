package view

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada-cloud/internal/model"
)

func sample() []model.Todo {
	return []model.Todo{
		{ID: "1", Title: "a", Status: model.StatusPending},
		{ID: "2", Title: "b", Status: model.StatusInProgress},
		{ID: "3", Title: "c", Status: model.StatusCompleted},
		{ID: "4", Title: "d"}, // missing status
		{ID: "5", Title: "e", Status: model.StatusCompleted},
	}
}

func ids(todos []model.Todo) []string {
	out := []string{}
	for _, td := range todos {
		out = append(out, td.ID)
	}
	return out
}

func TestApplyAllReturnsCollection(t *testing.T) {
	c := sample()
	if diff := cmp.Diff(c, Apply(c, FilterAll)); diff != "" {
		t.Errorf("Apply(all) mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyByStatus(t *testing.T) {
	c := sample()
	tests := []struct {
		f    Filter
		want []string
	}{
		{FilterPending, []string{"1", "4"}},
		{FilterInProgress, []string{"2"}},
		{FilterCompleted, []string{"3", "5"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.f), func(t *testing.T) {
			got := Apply(c, tt.f)
			assert.Equal(t, tt.want, ids(got))
			for _, td := range got {
				assert.Equal(t, model.Status(tt.f), td.EffectiveStatus())
			}
		})
	}
}

func TestApplyIsSubsetAndPure(t *testing.T) {
	c := sample()
	before := append([]model.Todo(nil), c...)
	all := map[string]bool{}
	for _, td := range c {
		all[td.ID] = true
	}
	for _, f := range Filters {
		for _, td := range Apply(c, f) {
			assert.True(t, all[td.ID], "filter %s produced foreign record %s", f, td.ID)
		}
	}
	assert.Equal(t, before, c)
}

func TestApplyEmpty(t *testing.T) {
	assert.Empty(t, Apply(nil, FilterCompleted))
	assert.Nil(t, Apply(nil, FilterAll))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("in-progress")
	require.NoError(t, err)
	assert.Equal(t, FilterInProgress, f)

	_, err = ParseFilter("soon")
	assert.True(t, errors.Is(err, ErrInvalidFilter))
}

func TestFilterNext(t *testing.T) {
	f := FilterAll
	var got []Filter
	for range Filters {
		f = f.Next()
		got = append(got, f)
	}
	assert.Equal(t, []Filter{FilterPending, FilterInProgress, FilterCompleted, FilterAll}, got)
}

func TestViewRecomputes(t *testing.T) {
	v := New()
	v.SetSource(sample())
	assert.Len(t, v.Visible(), 5)

	v.SetFilter(FilterCompleted)
	assert.Equal(t, []string{"3", "5"}, ids(v.Visible()))

	// new source with the same filter
	v.SetSource([]model.Todo{{ID: "9", Status: model.StatusCompleted}, {ID: "10"}})
	assert.Equal(t, []string{"9"}, ids(v.Visible()))

	v.SetFilter(FilterPending)
	assert.Equal(t, []string{"10"}, ids(v.Visible()))
}

func TestCounts(t *testing.T) {
	c := Counts(sample())
	assert.Equal(t, 2, c[model.StatusPending])
	assert.Equal(t, 1, c[model.StatusInProgress])
	assert.Equal(t, 2, c[model.StatusCompleted])
}

func TestUnknownStatusCountsAsPending(t *testing.T) {
	c := []model.Todo{
		{ID: "1", Status: model.StatusPending},
		{ID: "2", Status: "archived"},
		{ID: "3", Status: model.StatusCompleted},
	}
	assert.Equal(t, []string{"1", "2"}, ids(Apply(c, FilterPending)))
	assert.Equal(t, 2, Counts(c)[model.StatusPending])
	assert.Zero(t, Counts(c)["archived"])
}
