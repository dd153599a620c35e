package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/bnema/immich-dupes/internal/domain"
	"github.com/bnema/immich-dupes/internal/navigation"
	"github.com/bnema/immich-dupes/internal/ports"
)

// GroupStore is the process-wide working set of duplicate groups. Like
// SessionStore, persistence is best-effort.
type GroupStore struct {
	repo   ports.GroupRepository
	clock  ports.Clock
	logger *slog.Logger

	mu         sync.RWMutex
	collection domain.Collection
}

func NewGroupStore(repo ports.GroupRepository, clock ports.Clock, logger *slog.Logger) *GroupStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &GroupStore{
		repo:       repo,
		clock:      clock,
		logger:     logger.With("store", "data"),
		collection: domain.Collection{Groups: map[domain.GroupID][]domain.AssetID{}},
	}
}

func (s *GroupStore) Load(ctx context.Context) error {
	collection, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load duplicate groups: %w", err)
	}
	collection.Normalize()

	s.mu.Lock()
	s.collection = collection
	s.mu.Unlock()

	return nil
}

// Groups returns a snapshot of the mapping from group ID to asset IDs.
func (s *GroupStore) Groups() map[domain.GroupID][]domain.AssetID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collection.Clone().Groups
}

func (s *GroupStore) Ordered() []domain.DuplicateGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collection.Ordered()
}

func (s *GroupStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collection.Len()
}

func (s *GroupStore) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collection.FetchedAt
}

func (s *GroupStore) Get(id domain.GroupID) (domain.DuplicateGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collection.Lookup(id)
}

// Resolve turns a route reference into a group. A reference equal to a group
// ID wins; an empty or all-digit reference is read as a position in Ordered.
// Any other reference is not found, so a stale ID never lands on another
// group. The returned int is the group's position.
func (s *GroupStore) Resolve(ref string) (domain.DuplicateGroup, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ordered := s.collection.Ordered()
	if len(ordered) == 0 {
		return domain.DuplicateGroup{}, 0, false
	}

	if ref != "" {
		for i, group := range ordered {
			if string(group.ID) == ref {
				return group, i, true
			}
		}
	}

	if !navigation.IsPositionalRef(ref) {
		return domain.DuplicateGroup{}, 0, false
	}

	position := navigation.ParseGroupRef(ref)
	if position >= len(ordered) {
		return domain.DuplicateGroup{}, position, false
	}

	return ordered[position], position, true
}

// RemoveGroup drops a whole group. Unknown IDs are ignored, so a stale
// reference is always safe to pass.
func (s *GroupStore) RemoveGroup(ctx context.Context, id domain.GroupID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collection.Groups[id]; !ok {
		return
	}
	s.collection = s.collection.Without(id)
	s.persist(ctx, s.collection)
}

// ReplaceAll swaps in a freshly fetched set of groups.
func (s *GroupStore) ReplaceAll(ctx context.Context, groups []domain.DuplicateGroup) {
	next := domain.NewCollection(groups, s.clock.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection = next
	s.persist(ctx, next)
}

// persist runs under the write lock so saves land in mutation order.
func (s *GroupStore) persist(ctx context.Context, collection domain.Collection) {
	if err := s.repo.Save(ctx, collection.Clone()); err != nil {
		s.logger.Warn("persist duplicate groups", "error", err)
		return
	}

	s.logger.Debug("duplicate groups persisted", "groups", collection.Len())
}

// Suggest returns the stored group ID closest to ref, for "did you mean"
// hints. Matches further than half of ref's length are not returned.
func (s *GroupStore) Suggest(ref string) (domain.GroupID, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var best domain.GroupID
	bestDistance := len(ref)/2 + 1
	for _, group := range s.collection.Ordered() {
		distance := levenshtein.ComputeDistance(strings.ToLower(ref), strings.ToLower(string(group.ID)))
		if distance < bestDistance {
			best = group.ID
			bestDistance = distance
		}
	}

	return best, best != ""
}
