package sheet

import "strings"

// Option configures a PositionalAdapter.
type Option func(*PositionalAdapter)

// WithAcceptedTokens replaces the whitelist applied to events 1-14.
// Tokens are compared upper-cased.
func WithAcceptedTokens(tokens []string) Option {
	return func(a *PositionalAdapter) {
		if len(tokens) == 0 {
			return
		}
		a.accepted = make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			a.accepted[strings.ToUpper(strings.TrimSpace(t))] = struct{}{}
		}
	}
}

// WithFuzzyHeaders lets header cells that are not an exact member name
// resolve to a member when the match is unambiguous.
func WithFuzzyHeaders(enabled bool) Option {
	return func(a *PositionalAdapter) {
		a.fuzzy = enabled
	}
}
