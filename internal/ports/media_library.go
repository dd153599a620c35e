package ports

import (
	"context"
	"io"

	"github.com/bnema/immich-dupes/internal/domain"
)

// MediaLibrary is the slice of the remote media-library API the review flow
// needs.
type MediaLibrary interface {
	ListDuplicates(ctx context.Context) ([]domain.DuplicateGroup, error)
	DeleteAssets(ctx context.Context, ids []domain.AssetID) error
	ClearDuplicate(ctx context.Context, ids []domain.AssetID) error
	Thumbnail(ctx context.Context, id domain.AssetID) (io.ReadCloser, string, error)
}
