package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionStub bool

func (s sessionStub) IsConfigured() bool { return bool(s) }

func TestGuardRedirectsUnconfiguredSessions(t *testing.T) {
	t.Parallel()

	paths := []string{"/", "", "/abc", "/7", "/groups/g-1/remove", "/setup/extra", "/setupx"}
	sessions := map[string]SessionState{
		"nil":          nil,
		"unconfigured": sessionStub(false),
	}

	for sessionName, session := range sessions {
		for _, target := range paths {
			decision := Guard(target, session)
			assert.Equal(t, Redirect, decision.Action, "session=%s target=%q", sessionName, target)
			assert.Equal(t, SetupPath, decision.Location, "session=%s target=%q", sessionName, target)
		}
	}
}

func TestGuardNeverRedirectsSetup(t *testing.T) {
	t.Parallel()

	for _, session := range []SessionState{nil, sessionStub(false), sessionStub(true)} {
		for _, target := range []string{"/setup", "/setup/", "/setup?next=/3", "setup"} {
			assert.Equal(t, Decision{Action: Proceed}, Guard(target, session), "target=%q", target)
		}
	}
}

func TestGuardProceedsWhenConfigured(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"/", "/abc", "/7", "/groups/refresh"} {
		assert.Equal(t, Decision{Action: Proceed}, Guard(target, sessionStub(true)), "target=%q", target)
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		wantName RouteName
		wantRef  string
		wantOK   bool
	}{
		{name: "root", target: "/", wantName: RouteDuplicateGroup, wantOK: true},
		{name: "empty", target: "", wantName: RouteDuplicateGroup, wantOK: true},
		{name: "setup", target: "/setup", wantName: RouteSetup, wantOK: true},
		{name: "setup trailing slash", target: "/setup/", wantName: RouteSetup, wantOK: true},
		{name: "group id", target: "/0f8e-11", wantName: RouteDuplicateGroup, wantRef: "0f8e-11", wantOK: true},
		{name: "positional", target: "/7?x=1", wantName: RouteDuplicateGroup, wantRef: "7", wantOK: true},
		{name: "escaped", target: "/a%20b", wantName: RouteDuplicateGroup, wantRef: "a b", wantOK: true},
		{name: "nested", target: "/a/b", wantOK: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			route, ref, ok := Match(tc.target)
			assert.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				return
			}
			assert.Equal(t, tc.wantName, route.Name)
			assert.Equal(t, tc.wantRef, ref)
			assert.Equal(t, tc.wantName != RouteSetup, route.Guarded)
		})
	}
}

func TestParseGroupRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{raw: "7", want: 7},
		{raw: "0", want: 0},
		{raw: "42", want: 42},
		{raw: "abc", want: 0},
		{raw: "", want: 0},
		{raw: "-3", want: 0},
		{raw: "1.5", want: 0},
		{raw: " 7", want: 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseGroupRef(tc.raw), "raw=%q", tc.raw)
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/setup", Path(RouteSetup, "ignored"))
	assert.Equal(t, "/", Path(RouteDuplicateGroup, ""))
	assert.Equal(t, "/g-1", Path(RouteDuplicateGroup, "g-1"))
	assert.Equal(t, "/a%20b", Path(RouteDuplicateGroup, "a b"))
}

func TestRouteTableGuardsEverythingButSetup(t *testing.T) {
	t.Parallel()

	for _, route := range Routes {
		assert.Equal(t, route.Pattern != SetupPath, route.Guarded, "pattern=%s", route.Pattern)
	}
}

func TestGuardRouteFollowsGuardedFlag(t *testing.T) {
	t.Parallel()

	for _, route := range Routes {
		decision := GuardRoute(route, sessionStub(false))
		if route.Guarded {
			assert.Equal(t, Redirect, decision.Action, "pattern=%s", route.Pattern)
		} else {
			assert.Equal(t, Proceed, decision.Action, "pattern=%s", route.Pattern)
		}
	}

	assert.Equal(t, Redirect, GuardRoute(Route{Name: RouteSetup, Guarded: true}, nil).Action)
	assert.Equal(t, Proceed, GuardRoute(Route{Name: RouteDuplicateGroup}, nil).Action)
}

func TestIsPositionalRef(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]bool{"": true, "0": true, "42": true, "abc": false, "-3": false, "1.5": false, " 7": false, "g1": false} {
		assert.Equal(t, want, IsPositionalRef(raw), "raw=%q", raw)
	}
}

func TestRouteByName(t *testing.T) {
	t.Parallel()

	route, ok := RouteByName(RouteDuplicateGroup)
	require.True(t, ok)
	assert.True(t, route.Guarded)

	route, ok = RouteByName(RouteSetup)
	require.True(t, ok)
	assert.False(t, route.Guarded)

	_, ok = RouteByName("missing")
	assert.False(t, ok)
}
