package ports

import (
	"context"

	"github.com/bnema/immich-dupes/internal/domain"
)

type SessionRepository interface {
	Load(ctx context.Context) (domain.SessionRecord, error)
	Save(ctx context.Context, record domain.SessionRecord) error
}
