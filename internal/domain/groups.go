package domain

import (
	"sort"
	"strings"
	"time"
)

type GroupID string
type AssetID string

// DuplicateGroup is a set of assets the remote service considers the same
// photo or video.
type DuplicateGroup struct {
	ID     GroupID
	Assets []AssetID
}

// Collection is the working set of duplicate groups keyed by stable group ID.
type Collection struct {
	Groups    map[GroupID][]AssetID
	FetchedAt time.Time
}

func NewCollection(groups []DuplicateGroup, fetchedAt time.Time) Collection {
	c := Collection{Groups: make(map[GroupID][]AssetID, len(groups)), FetchedAt: fetchedAt}
	for _, group := range groups {
		c.Groups[group.ID] = append(c.Groups[group.ID], group.Assets...)
	}
	c.Normalize()

	return c
}

func (c Collection) Len() int {
	return len(c.Groups)
}

func (c Collection) Lookup(id GroupID) (DuplicateGroup, bool) {
	assets, ok := c.Groups[id]
	if !ok {
		return DuplicateGroup{}, false
	}

	return DuplicateGroup{ID: id, Assets: append([]AssetID(nil), assets...)}, true
}

// Without returns a new collection holding every group except id. The
// receiver is not modified.
func (c Collection) Without(id GroupID) Collection {
	next := Collection{Groups: make(map[GroupID][]AssetID, len(c.Groups)), FetchedAt: c.FetchedAt}
	for groupID, assets := range c.Groups {
		if groupID == id {
			continue
		}
		next.Groups[groupID] = append([]AssetID(nil), assets...)
	}

	return next
}

func (c Collection) Clone() Collection {
	next := Collection{Groups: make(map[GroupID][]AssetID, len(c.Groups)), FetchedAt: c.FetchedAt}
	for groupID, assets := range c.Groups {
		next.Groups[groupID] = append([]AssetID(nil), assets...)
	}

	return next
}

// Ordered lists groups sorted by ID.
func (c Collection) Ordered() []DuplicateGroup {
	ids := make([]GroupID, 0, len(c.Groups))
	for id := range c.Groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	groups := make([]DuplicateGroup, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, DuplicateGroup{ID: id, Assets: append([]AssetID(nil), c.Groups[id]...)})
	}

	return groups
}

// Normalize trims and de-duplicates asset IDs and drops groups that end up
// empty or have a blank ID.
func (c *Collection) Normalize() {
	if c == nil {
		return
	}
	if c.Groups == nil {
		c.Groups = map[GroupID][]AssetID{}
		return
	}

	for id, assets := range c.Groups {
		normalized := NormalizeAssets(assets)
		if strings.TrimSpace(string(id)) == "" || len(normalized) == 0 {
			delete(c.Groups, id)
			continue
		}
		c.Groups[id] = normalized
	}
}

func NormalizeAssets(assets []AssetID) []AssetID {
	result := make([]AssetID, 0, len(assets))
	seen := make(map[AssetID]struct{}, len(assets))
	for _, asset := range assets {
		trimmed := AssetID(strings.TrimSpace(string(asset)))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}

	return result
}

func (g DuplicateGroup) Contains(asset AssetID) bool {
	for _, candidate := range g.Assets {
		if candidate == asset {
			return true
		}
	}

	return false
}
