package ranking

import "github.com/okian/maulas/internal/domain/scoring"

// Option configures a Resolver.
type Option func(*Resolver)

// WithPoints sets the points table used to fill Entry.Points.
func WithPoints(p scoring.Points) Option {
	return func(r *Resolver) {
		if p != nil {
			r.points = p
		}
	}
}

// WithBootstrap sets the member assigned to round 1, which has no previous
// round to take a winner from.
func WithBootstrap(memberID int) Option {
	return func(r *Resolver) {
		r.bootstrap = memberID
	}
}
