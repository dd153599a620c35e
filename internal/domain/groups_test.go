package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCollectionNormalizesGroups(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	c := NewCollection([]DuplicateGroup{
		{ID: "g-1", Assets: []AssetID{"a", " a ", "", "b"}},
		{ID: "g-2", Assets: []AssetID{"", "  "}},
		{ID: " ", Assets: []AssetID{"c"}},
	}, fetchedAt)

	assert.Equal(t, map[GroupID][]AssetID{"g-1": {"a", "b"}}, c.Groups)
	assert.Equal(t, fetchedAt, c.FetchedAt)
}

func TestCollectionWithoutRebuildsMap(t *testing.T) {
	t.Parallel()

	c := NewCollection([]DuplicateGroup{
		{ID: "g-1", Assets: []AssetID{"a", "b"}},
		{ID: "g-2", Assets: []AssetID{"c", "d"}},
	}, time.Time{})

	next := c.Without("g-1")

	assert.Equal(t, map[GroupID][]AssetID{"g-2": {"c", "d"}}, next.Groups)
	assert.Len(t, c.Groups, 2, "receiver must stay untouched")

	next.Groups["g-2"][0] = "mutated"
	assert.Equal(t, AssetID("c"), c.Groups["g-2"][0])
}

func TestCollectionWithoutAbsentIDIsNoop(t *testing.T) {
	t.Parallel()

	c := NewCollection([]DuplicateGroup{{ID: "g-1", Assets: []AssetID{"a", "b"}}}, time.Time{})

	assert.Equal(t, c.Groups, c.Without("missing").Groups)
	assert.Equal(t, c.Without("g-1").Groups, c.Without("g-1").Without("g-1").Groups)
}

func TestCollectionOrderedIsSortedByID(t *testing.T) {
	t.Parallel()

	c := NewCollection([]DuplicateGroup{
		{ID: "c", Assets: []AssetID{"3"}},
		{ID: "a", Assets: []AssetID{"1"}},
		{ID: "b", Assets: []AssetID{"2"}},
	}, time.Time{})

	ordered := c.Ordered()
	ids := make([]GroupID, 0, len(ordered))
	for _, g := range ordered {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []GroupID{"a", "b", "c"}, ids)
}

func TestCollectionLookupReturnsCopy(t *testing.T) {
	t.Parallel()

	c := NewCollection([]DuplicateGroup{{ID: "g-1", Assets: []AssetID{"a", "b"}}}, time.Time{})

	group, ok := c.Lookup("g-1")
	assert.True(t, ok)
	assert.True(t, group.Contains("b"))
	assert.False(t, group.Contains("z"))

	group.Assets[0] = "mutated"
	assert.Equal(t, AssetID("a"), c.Groups["g-1"][0])

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestCollectionNormalizeOnZeroValue(t *testing.T) {
	t.Parallel()

	var c Collection
	c.Normalize()
	assert.NotNil(t, c.Groups)
	assert.Equal(t, 0, c.Len())
}
