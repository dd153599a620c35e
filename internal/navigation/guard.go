package navigation

type Action int

const (
	Proceed Action = iota
	Redirect
)

func (a Action) String() string {
	switch a {
	case Proceed:
		return "proceed"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

type Decision struct {
	Action   Action
	Location string
}

// SessionState is the only thing the guard reads.
type SessionState interface {
	IsConfigured() bool
}

// Guard decides a navigation to target. The matched route's Guarded flag
// decides; paths outside the route table are always guarded. A nil session
// counts as unconfigured.
func Guard(target string, session SessionState) Decision {
	route, _, ok := Match(target)
	if !ok {
		route = Route{Guarded: true}
	}

	return GuardRoute(route, session)
}

// GuardRoute decides a navigation to an already matched route.
func GuardRoute(route Route, session SessionState) Decision {
	if !route.Guarded {
		return Decision{Action: Proceed}
	}

	if session == nil || !session.IsConfigured() {
		return Decision{Action: Redirect, Location: SetupPath}
	}

	return Decision{Action: Proceed}
}
