package ports

import (
	"context"

	"github.com/bnema/immich-dupes/internal/domain"
)

type GroupRepository interface {
	Load(ctx context.Context) (domain.Collection, error)
	Save(ctx context.Context, collection domain.Collection) error
}
