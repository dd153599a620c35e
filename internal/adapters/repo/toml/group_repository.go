package toml

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/ports"
	"github.com/spf13/viper"
)

const (
	DataPathKey  = "data.path"
	dataFileName = "data.toml"
)

// GroupRepository persists the "data" store.
type GroupRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.GroupRepository = (*GroupRepository)(nil)

func NewGroupRepository(cfg *viper.Viper) (*GroupRepository, error) {
	path, err := storePath(cfg, DataPathKey, dataFileName)
	if err != nil {
		return nil, err
	}

	return &GroupRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *GroupRepository) Path() string {
	return r.path
}

func (r *GroupRepository) Load(ctx context.Context) (domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return domain.Collection{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file groupsFileSchema
	if err := readFile(r.path, "data", &file); err != nil {
		return domain.Collection{}, err
	}
	if err := file.validateVersion(); err != nil {
		return domain.Collection{}, err
	}

	groups := make([]domain.DuplicateGroup, 0, len(file.Groups))
	for _, entry := range file.Groups {
		assets := make([]domain.AssetID, 0, len(entry.Assets))
		for _, asset := range entry.Assets {
			assets = append(assets, domain.AssetID(asset))
		}
		groups = append(groups, domain.DuplicateGroup{ID: domain.GroupID(entry.ID), Assets: assets})
	}

	return domain.NewCollection(groups, parseTime(file.FetchedAt)), nil
}

func (r *GroupRepository) Save(ctx context.Context, collection domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := groupsFileSchema{
		FetchedAt: formatTime(collection.FetchedAt),
		Groups:    make([]groupSchema, 0, len(collection.Groups)),
	}
	for id, assets := range collection.Groups {
		encoded := groupSchema{ID: string(id), Assets: make([]string, 0, len(assets))}
		for _, asset := range assets {
			encoded.Assets = append(encoded.Assets, string(asset))
		}
		file.Groups = append(file.Groups, encoded)
	}
	sort.Slice(file.Groups, func(i, j int) bool { return file.Groups[i].ID < file.Groups[j].ID })
	file.applyDefaults()

	return writeFile(r.path, "data", file)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
