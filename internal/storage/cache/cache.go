// Package cache provides a read-through course-list cache in front of
// any storage.Storage.
//
// Course catalogues change rarely while every client opening the course
// table asks for one, so ListCourses results are kept in memory per
// session. Registrations always go straight to the wrapped store.
package cache

import (
	"context"
	"log/slog"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"
)

const cleanupInterval = 30 * time.Minute

// Store wraps a storage.Storage and caches ListCourses results.
type Store struct {
	next  storage.Storage
	cache *gocache.Cache
	ttl   time.Duration
}

var _ storage.Storage = (*Store)(nil)

// New wraps next; cached course lists expire after ttl.
func New(next storage.Storage, ttl time.Duration) *Store {
	return &Store{
		next:  next,
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func key(session types.Session) string {
	return "courses:" + string(session)
}

// ListCourses serves from the cache when possible. Errors are never cached.
func (s *Store) ListCourses(ctx context.Context, session types.Session) ([]types.Course, error) {
	if v, found := s.cache.Get(key(session)); found {
		if courses, ok := v.([]types.Course); ok {
			slog.Debug("course cache hit", slog.String("session", string(session)))
			return slices.Clone(courses), nil
		}
		slog.Error("wrong type in course cache", slog.String("session", string(session)))
	}

	courses, err := s.next.ListCourses(ctx, session)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key(session), slices.Clone(courses), s.ttl)
	return courses, nil
}

// RegisterStudent passes through to the wrapped store.
func (s *Store) RegisterStudent(ctx context.Context, form types.RegistrationForm) (types.Registration, error) {
	return s.next.RegisterStudent(ctx, form)
}
