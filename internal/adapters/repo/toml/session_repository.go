package toml

import (
	"context"
	"sync"

	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/ports"
	"github.com/spf13/viper"
)

const (
	APIPathKey  = "api.path"
	apiFileName = "api.toml"
)

// SessionRepository persists the "api" store.
type SessionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	path, err := storePath(cfg, APIPathKey, apiFileName)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SessionRepository) Path() string {
	return r.path
}

func (r *SessionRepository) Load(ctx context.Context) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file sessionFileSchema
	if err := readFile(r.path, "api", &file); err != nil {
		return domain.SessionRecord{}, err
	}
	if err := file.validateVersion(); err != nil {
		return domain.SessionRecord{}, err
	}

	return domain.SessionRecord{
		Endpoint:        file.Endpoint,
		APIKeyRef:       file.APIKeyRef,
		APIKey:          file.APIKey,
		BaseURLOverride: file.BaseURLOverride,
	}, nil
}

func (r *SessionRepository) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := sessionFileSchema{
		Endpoint:        record.Endpoint,
		APIKeyRef:       record.APIKeyRef,
		APIKey:          record.APIKey,
		BaseURLOverride: record.BaseURLOverride,
	}
	file.applyDefaults()

	return writeFile(r.path, "api", file)
}
