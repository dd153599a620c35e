package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroupRepository(t *testing.T) *GroupRepository {
	t.Helper()

	config := viper.New()
	config.Set(DataPathKey, filepath.Join(t.TempDir(), "data.toml"))

	repo, err := NewGroupRepository(config)
	require.NoError(t, err)
	return repo
}

func TestGroupRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestGroupRepository(t)
	fetchedAt := time.Date(2026, 10, 17, 8, 30, 0, 0, time.UTC)
	collection := domain.NewCollection([]domain.DuplicateGroup{
		{ID: "b-group", Assets: []domain.AssetID{"asset-3", "asset-4"}},
		{ID: "a-group", Assets: []domain.AssetID{"asset-1", "asset-2"}},
	}, fetchedAt)

	require.NoError(t, repo.Save(context.Background(), collection))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, collection.Groups, got.Groups)
	assert.True(t, fetchedAt.Equal(got.FetchedAt))

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	text := string(data)
	assert.Less(t, strings.Index(text, "a-group"), strings.Index(text, "b-group"), "groups are written in ID order")
}

func TestGroupRepositoryLoadDropsEmptyGroups(t *testing.T) {
	t.Parallel()

	repo := newTestGroupRepository(t)
	require.NoError(t, os.WriteFile(repo.Path(), []byte(strings.Join([]string{
		"version = 1",
		"",
		"[[groups]]",
		"id = \"kept\"",
		"assets = [\"a\", \"b\"]",
		"",
		"[[groups]]",
		"id = \"empty\"",
		"assets = []",
		"",
	}, "\n")), 0o600))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.GroupID][]domain.AssetID{"kept": {"a", "b"}}, got.Groups)
	assert.True(t, got.FetchedAt.IsZero())
}

func TestGroupRepositoryIgnoresLegacyPositionalFormat(t *testing.T) {
	t.Parallel()

	repo := newTestGroupRepository(t)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("duplicates = [[\"a\", \"b\"], [\"c\", \"d\"]]\n"), 0o600))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestGroupRepositoryDecodeError(t *testing.T) {
	t.Parallel()

	repo := newTestGroupRepository(t)
	require.NoError(t, os.WriteFile(repo.Path(), []byte("groups = \"not-a-table\n"), 0o600))

	_, err := repo.Load(context.Background())
	assert.ErrorContains(t, err, "decode data file")
}

func TestGroupRepositoryConcurrentSavesSerialize(t *testing.T) {
	t.Parallel()

	repo := newTestGroupRepository(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			collection := domain.NewCollection([]domain.DuplicateGroup{
				{ID: domain.GroupID("g-" + string(rune('a'+i))), Assets: []domain.AssetID{"x", "y"}},
			}, time.Time{})
			assert.NoError(t, repo.Save(context.Background(), collection))
		}(i)
	}
	wg.Wait()

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())

	entries, err := os.ReadDir(filepath.Dir(repo.Path()))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "temp file left behind: %s", entry.Name())
	}
}
