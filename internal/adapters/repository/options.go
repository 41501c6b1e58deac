package repository

import "time"

// MongoOption applies a configuration option to the MongoStore.
type MongoOption func(*MongoStore)

// WithWriteTimeout bounds each upsert round trip.
func WithWriteTimeout(d time.Duration) MongoOption {
	return func(s *MongoStore) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}
