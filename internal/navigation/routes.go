// Package navigation holds the route table shared by the CLI and the web UI
// and the guard that decides whether a navigation may proceed.
package navigation

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

type RouteName string

const (
	RouteDuplicateGroup RouteName = "duplicate-group"
	RouteSetup          RouteName = "setup"
)

const (
	RootPath  = "/"
	SetupPath = "/setup"

	GroupRefParam = "groupRef"
)

type Route struct {
	Name    RouteName
	Pattern string
	Guarded bool
}

// Routes is the declarative route table. Patterns use chi syntax.
var Routes = []Route{
	{Name: RouteDuplicateGroup, Pattern: RootPath, Guarded: true},
	{Name: RouteDuplicateGroup, Pattern: "/{" + GroupRefParam + "}", Guarded: true},
	{Name: RouteSetup, Pattern: SetupPath, Guarded: false},
}

// Match resolves a request path against Routes. groupRef is the raw optional
// segment of the duplicate-group route.
func Match(target string) (route Route, groupRef string, ok bool) {
	cleaned := cleanPath(target)

	if cleaned == SetupPath {
		return Routes[2], "", true
	}
	if cleaned == RootPath {
		return Routes[0], "", true
	}

	segment := strings.TrimPrefix(cleaned, "/")
	if strings.Contains(segment, "/") {
		return Route{}, "", false
	}
	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}

	return Routes[1], segment, true
}

// Path builds the href of a route. Duplicate-group links carry the stable
// group ID rather than a position.
func Path(name RouteName, groupRef string) string {
	switch name {
	case RouteSetup:
		return SetupPath
	case RouteDuplicateGroup:
		if groupRef == "" {
			return RootPath
		}
		return RootPath + url.PathEscape(groupRef)
	default:
		return RootPath
	}
}

// ParseGroupRef parses a positional group reference. Anything that is not a
// non-negative base-10 integer yields 0.
func ParseGroupRef(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}

	return n
}

// IsPositionalRef reports whether raw reads as a position: empty, or only
// ASCII digits.
func IsPositionalRef(raw string) bool {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RouteByName returns the first route registered under name.
func RouteByName(name RouteName) (Route, bool) {
	for _, route := range Routes {
		if route.Name == name {
			return route, true
		}
	}
	return Route{}, false
}

func cleanPath(target string) string {
	if target == "" {
		return RootPath
	}
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}

	return path.Clean(target)
}
