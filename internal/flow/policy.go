package flow

import "strings"

// ServiceCallPolicy decides whether a call should be rendered with the
// distinguished service-call shape. It receives the resolved display name
// of the call and the full call text.
type ServiceCallPolicy func(name, callText string) bool

// serviceNameHints are the substrings that mark a call target as an
// external service, client or proxy dependency.
var serviceNameHints = []string{"Service", "Client", "Proxy"}

// DefaultServiceCallPolicy matches names containing one of the service
// naming hints, or call text containing an object construction.
//
// The heuristic is intentionally fuzzy: a plain substring match will also
// flag unrelated identifiers such as a local named clientName. That is the
// documented behavior, not a defect; callers wanting sharper rules supply
// their own policy.
func DefaultServiceCallPolicy(name, callText string) bool {
	for _, hint := range serviceNameHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return strings.Contains(callText, "new ")
}
