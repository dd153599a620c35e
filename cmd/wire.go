package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/bnema/immich-dupes/internal/adapters/immich"
	reviewrender "github.com/bnema/immich-dupes/internal/adapters/render/review"
	tomlrepo "github.com/bnema/immich-dupes/internal/adapters/repo/toml"
	chainstore "github.com/bnema/immich-dupes/internal/adapters/secrets/chain"
	filestore "github.com/bnema/immich-dupes/internal/adapters/secrets/file"
	"github.com/bnema/immich-dupes/internal/application"
	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/logging"
	"github.com/bnema/immich-dupes/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	config       *viper.Viper
	logger       *slog.Logger
	session      *application.SessionStore
	groups       *application.GroupStore
	review       *application.ReviewService
	pageRenderer func(reviewrender.Page, reviewrender.RenderOptions) (string, error)
	listRenderer func([]domain.DuplicateGroup, reviewrender.RenderOptions) (string, error)
	now          func() time.Time
}

func wireApp() (*app, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, config.GetString(keyLogLevel), config.GetString(keyLogFormat))
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	sessionRepo, err := tomlrepo.NewSessionRepository(config)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}
	groupRepo, err := tomlrepo.NewGroupRepository(config)
	if err != nil {
		return nil, fmt.Errorf("wire group repository: %w", err)
	}

	secretStore, err := wireSecretStore(config)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	session := application.NewSessionStore(sessionRepo, secretStore, logger)
	if err := session.Load(ctx); err != nil {
		return nil, err
	}
	groups := application.NewGroupStore(groupRepo, ports.SystemClock{}, logger)
	if err := groups.Load(ctx); err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	timeout := config.GetDuration(keyHTTPTimeout)
	library := func(cfg domain.ClientConfig) (ports.MediaLibrary, error) {
		client, err := immich.NewClient(cfg, httpClient, timeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	return &app{
		config:       config,
		logger:       logger,
		session:      session,
		groups:       groups,
		review:       application.NewReviewService(session, groups, library, logger),
		pageRenderer: reviewrender.Render,
		listRenderer: reviewrender.RenderList,
		now:          time.Now,
	}, nil
}

// wireSecretStore returns nil for the inline backend, which keeps the key in
// api.toml.
func wireSecretStore(config *viper.Viper) (ports.SecretStore, error) {
	dir := config.GetString(keySecretsDir)

	switch backend := config.GetString(keySecretsBackend); backend {
	case secretsBackendChain:
		store, err := chainstore.NewPassFirstWithFileFallback(dir)
		if err != nil {
			return nil, fmt.Errorf("wire secret store chain: %w", err)
		}
		return store, nil
	case secretsBackendFile:
		return filestore.NewStore(dir), nil
	case secretsBackendInline:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported %s %q", keySecretsBackend, backend)
	}
}

func (a *app) renderOptions() reviewrender.RenderOptions {
	return reviewrender.RenderOptions{
		Now:        a.now(),
		StaleAfter: a.config.GetDuration(keyStaleAfter),
		FetchedAt:  a.groups.FetchedAt(),
	}
}
