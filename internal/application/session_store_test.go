package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tomlrepo "github.com/bnema/immich-dupes/internal/adapters/repo/toml"
	filestore "github.com/bnema/immich-dupes/internal/adapters/secrets/file"
	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreStartsUnconfigured(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	store := NewSessionStore(repo, nil, nil)

	assert.False(t, store.IsConfigured())
	assert.Empty(t, store.Endpoint())
	assert.Empty(t, store.APIKey())
	assert.Empty(t, store.BaseURLOverride())

	_, err := store.ResolvedBaseURL()
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestSessionStoreNilIsUnconfigured(t *testing.T) {
	var store *SessionStore
	assert.False(t, store.IsConfigured())
}

func TestSessionStoreSetPersistsCredentialInSecretStore(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	secrets := mocks.NewMockSecretStore(t)
	store := NewSessionStore(repo, secrets, nil)

	secrets.EXPECT().Put(mockAnyContext(), APIKeySecretKey, "key-1").Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), domain.SessionRecord{
		Endpoint:        "https://photos.example.com/api",
		APIKeyRef:       APIKeySecretKey,
		BaseURLOverride: "https://proxy.local",
	}).Return(nil).Once()

	store.Set(context.Background(), "https://photos.example.com/api", "key-1", "https://proxy.local")

	assert.True(t, store.IsConfigured())
	assert.Equal(t, "https://photos.example.com/api", store.Endpoint())
	assert.Equal(t, "key-1", store.APIKey())
	assert.Equal(t, "https://proxy.local", store.BaseURLOverride())

	baseURL, err := store.ResolvedBaseURL()
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.local", baseURL)
}

func TestSessionStoreSetKeepsKeyInlineWithoutSecretStore(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	store := NewSessionStore(repo, nil, nil)

	repo.EXPECT().Save(mockAnyContext(), domain.SessionRecord{
		Endpoint: "https://photos.example.com/api",
		APIKey:   "key-1",
	}).Return(nil).Once()

	store.Set(context.Background(), "https://photos.example.com/api", "key-1", "")
	assert.True(t, store.IsConfigured())
}

func TestSessionStoreSwallowsPersistenceFailures(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	secrets := mocks.NewMockSecretStore(t)
	store := NewSessionStore(repo, secrets, nil)

	secrets.EXPECT().Put(mockAnyContext(), APIKeySecretKey, "key-1").Return(errors.New("keyring locked")).Once()
	repo.EXPECT().Save(mockAnyContext(), domain.SessionRecord{
		Endpoint: "https://photos.example.com/api",
		APIKey:   "key-1",
	}).Return(errors.New("read-only file system")).Once()

	store.Set(context.Background(), "https://photos.example.com/api", "key-1", "")

	assert.True(t, store.IsConfigured(), "in-memory state applies even when persistence fails")
}

func TestSessionStorePartialConfigurationIsUnconfigured(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	secrets := mocks.NewMockSecretStore(t)
	store := NewSessionStore(repo, secrets, nil)

	secrets.EXPECT().Delete(mockAnyContext(), APIKeySecretKey).Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), domain.SessionRecord{Endpoint: "https://photos.example.com/api"}).Return(nil).Once()

	store.Set(context.Background(), "https://photos.example.com/api", "", "")
	assert.False(t, store.IsConfigured())
}

func TestSessionStoreClearRemovesCredential(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	secrets := mocks.NewMockSecretStore(t)
	store := NewSessionStore(repo, secrets, nil)

	secrets.EXPECT().Put(mockAnyContext(), APIKeySecretKey, "key-1").Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), domain.SessionRecord{
		Endpoint:  "https://photos.example.com/api",
		APIKeyRef: APIKeySecretKey,
	}).Return(nil).Once()
	secrets.EXPECT().Delete(mockAnyContext(), APIKeySecretKey).Return(nil).Once()
	repo.EXPECT().Save(mockAnyContext(), domain.SessionRecord{}).Return(nil).Once()

	store.Set(context.Background(), "https://photos.example.com/api", "key-1", "")
	store.Clear(context.Background())

	assert.False(t, store.IsConfigured())
	assert.Equal(t, domain.Session{}, store.Snapshot())
}

func TestSessionStoreLoadResolvesSecretReference(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	secrets := mocks.NewMockSecretStore(t)
	store := NewSessionStore(repo, secrets, nil)

	repo.EXPECT().Load(mockAnyContext()).Return(domain.SessionRecord{
		Endpoint:  "https://photos.example.com/api",
		APIKeyRef: APIKeySecretKey,
	}, nil).Once()
	secrets.EXPECT().Get(mockAnyContext(), APIKeySecretKey).Return("key-1", nil).Once()

	require.NoError(t, store.Load(context.Background()))
	assert.Equal(t, domain.Session{Endpoint: "https://photos.example.com/api", APIKey: "key-1"}, store.Snapshot())
}

func TestSessionStoreLoadLeavesKeyUnsetWhenSecretMissing(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	secrets := mocks.NewMockSecretStore(t)
	store := NewSessionStore(repo, secrets, nil)

	repo.EXPECT().Load(mockAnyContext()).Return(domain.SessionRecord{
		Endpoint:  "https://photos.example.com/api",
		APIKeyRef: APIKeySecretKey,
	}, nil).Once()
	secrets.EXPECT().Get(mockAnyContext(), APIKeySecretKey).Return("", domain.ErrSecretNotFound).Once()

	require.NoError(t, store.Load(context.Background()))
	assert.False(t, store.IsConfigured())
	assert.Equal(t, "https://photos.example.com/api", store.Endpoint())
}

func TestSessionStoreLoadReturnsRepositoryError(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	store := NewSessionStore(repo, nil, nil)

	repo.EXPECT().Load(mockAnyContext()).Return(domain.SessionRecord{}, errors.New("decode api file: boom")).Once()

	err := store.Load(context.Background())
	assert.ErrorContains(t, err, "load session")
}

func TestSessionStoreBuildClientConfig(t *testing.T) {
	repo := mocks.NewMockSessionRepository(t)
	store := NewSessionStore(repo, nil, nil)

	repo.EXPECT().Save(mockAnyContext(), domain.SessionRecord{
		Endpoint: "https://api.example.com/v1/",
		APIKey:   "key-1",
	}).Return(nil).Once()

	store.Set(context.Background(), "https://api.example.com/v1/", "key-1", "")

	cfg, err := store.BuildClientConfig()
	require.NoError(t, err)
	assert.Equal(t, domain.ClientConfig{
		APIKey:   "key-1",
		BaseURL:  "https://api.example.com",
		Endpoint: "https://api.example.com/v1",
	}, cfg)
}

func TestSessionStoreSurvivesRestartWithRealAdapters(t *testing.T) {
	dir := t.TempDir()
	config := viper.New()
	config.Set(tomlrepo.APIPathKey, filepath.Join(dir, "api.toml"))

	repo, err := tomlrepo.NewSessionRepository(config)
	require.NoError(t, err)
	secrets := filestore.NewStore(filepath.Join(dir, "secrets"))

	first := NewSessionStore(repo, secrets, nil)
	first.Set(context.Background(), "https://photos.example.com/api", "key-1", "")

	second := NewSessionStore(repo, secrets, nil)
	require.NoError(t, second.Load(context.Background()))
	assert.Equal(t, first.Snapshot(), second.Snapshot())
	assert.True(t, second.IsConfigured())
}

func TestSessionStoreKeepsKeyInlineWhenSecretStoreFails(t *testing.T) {
	dir := t.TempDir()
	config := viper.New()
	config.Set(tomlrepo.APIPathKey, filepath.Join(dir, "api.toml"))

	repo, err := tomlrepo.NewSessionRepository(config)
	require.NoError(t, err)
	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Put(mockAnyContext(), APIKeySecretKey, "key-1").Return(errors.New("keyring locked")).Once()

	first := NewSessionStore(repo, secrets, nil)
	first.Set(context.Background(), "https://photos.example.com/api", "key-1", "")
	require.True(t, first.IsConfigured())

	record, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, record.APIKeyRef)
	assert.Equal(t, "key-1", record.APIKey)

	second := NewSessionStore(repo, secrets, nil)
	require.NoError(t, second.Load(context.Background()))
	assert.True(t, second.IsConfigured())
	assert.Equal(t, "key-1", second.APIKey())
}
