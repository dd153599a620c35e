package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/ports"
)

// LibraryFactory builds a remote client from the session's client
// configuration.
type LibraryFactory func(cfg domain.ClientConfig) (ports.MediaLibrary, error)

// Resolution describes what happened to a resolved group.
type Resolution struct {
	GroupID domain.GroupID
	Kept    []domain.AssetID
	Deleted []domain.AssetID
}

// ReviewService runs the review actions that touch the remote library and
// then updates the local group store.
type ReviewService struct {
	session *SessionStore
	groups  *GroupStore
	library LibraryFactory
	logger  *slog.Logger
}

func NewReviewService(session *SessionStore, groups *GroupStore, library LibraryFactory, logger *slog.Logger) *ReviewService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &ReviewService{
		session: session,
		groups:  groups,
		library: library,
		logger:  logger,
	}
}

// Refresh fetches the current duplicate groups and replaces the local set.
func (s *ReviewService) Refresh(ctx context.Context) (int, error) {
	library, err := s.client()
	if err != nil {
		return 0, err
	}

	groups, err := library.ListDuplicates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list duplicates: %w", err)
	}

	s.groups.ReplaceAll(ctx, groups)
	count := s.groups.Len()
	s.logger.Info("duplicate groups refreshed", "fetched", len(groups), "kept", count)

	return count, nil
}

// Resolve keeps the given assets, deletes the rest of the group remotely and
// drops the group locally. With no keep list the first asset is kept.
func (s *ReviewService) Resolve(ctx context.Context, id domain.GroupID, keep []domain.AssetID) (Resolution, error) {
	group, ok := s.groups.Get(id)
	if !ok {
		return Resolution{}, fmt.Errorf("resolve %q: %w", id, domain.ErrGroupNotFound)
	}

	keep = domain.NormalizeAssets(keep)
	if len(keep) == 0 {
		keep = group.Assets[:1]
	}
	for _, asset := range keep {
		if !group.Contains(asset) {
			return Resolution{}, fmt.Errorf("resolve %q: keep %q: %w", id, asset, domain.ErrAssetNotInGroup)
		}
	}

	kept := make(map[domain.AssetID]struct{}, len(keep))
	for _, asset := range keep {
		kept[asset] = struct{}{}
	}
	trash := make([]domain.AssetID, 0, len(group.Assets))
	for _, asset := range group.Assets {
		if _, ok := kept[asset]; !ok {
			trash = append(trash, asset)
		}
	}

	library, err := s.client()
	if err != nil {
		return Resolution{}, err
	}

	if len(trash) > 0 {
		if err := library.DeleteAssets(ctx, trash); err != nil {
			return Resolution{}, fmt.Errorf("resolve %q: delete assets: %w", id, err)
		}
	}
	if err := library.ClearDuplicate(ctx, keep); err != nil {
		s.logger.Warn("clear duplicate marker on kept assets", "group", id, "error", err)
	}

	s.groups.RemoveGroup(ctx, id)
	s.logger.Info("duplicate group resolved", "group", id, "kept", len(keep), "deleted", len(trash))

	return Resolution{GroupID: id, Kept: keep, Deleted: trash}, nil
}

// Dismiss keeps every asset of the group and tells the library they are not
// duplicates.
func (s *ReviewService) Dismiss(ctx context.Context, id domain.GroupID) (Resolution, error) {
	group, ok := s.groups.Get(id)
	if !ok {
		return Resolution{}, fmt.Errorf("dismiss %q: %w", id, domain.ErrGroupNotFound)
	}

	library, err := s.client()
	if err != nil {
		return Resolution{}, err
	}

	if err := library.ClearDuplicate(ctx, group.Assets); err != nil {
		return Resolution{}, fmt.Errorf("dismiss %q: %w", id, err)
	}

	s.groups.RemoveGroup(ctx, id)
	s.logger.Info("duplicate group dismissed", "group", id, "assets", len(group.Assets))

	return Resolution{GroupID: id, Kept: group.Assets}, nil
}

// Thumbnail streams an asset preview. The caller closes the reader.
func (s *ReviewService) Thumbnail(ctx context.Context, id domain.AssetID) (io.ReadCloser, string, error) {
	library, err := s.client()
	if err != nil {
		return nil, "", err
	}

	return library.Thumbnail(ctx, id)
}

func (s *ReviewService) client() (ports.MediaLibrary, error) {
	cfg, err := s.session.BuildClientConfig()
	if err != nil {
		return nil, err
	}

	library, err := s.library(cfg)
	if err != nil {
		return nil, fmt.Errorf("build media library client: %w", err)
	}

	return library, nil
}
