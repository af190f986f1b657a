package catalog

import (
	"context"
	"fmt"
	"time"

	"booklist/internal/platform/cache"
	"booklist/internal/platform/openlibrary"

	"github.com/rs/zerolog"
)

// CachedSource keeps subject responses in a cache for ttl. Cache failures are
// logged and fall through to the wrapped source.
type CachedSource struct {
	next  Source
	cache cache.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedSource(next Source, c cache.Cache, ttl time.Duration, log zerolog.Logger) *CachedSource {
	return &CachedSource{next: next, cache: c, ttl: ttl, log: log}
}

func subjectCacheKey(subject string, limit int) string {
	return fmt.Sprintf("openlibrary:subject:%s:%d", subject, limit)
}

func (s *CachedSource) GetSubject(ctx context.Context, subject string, limit int) (*openlibrary.SubjectResponse, error) {
	key := subjectCacheKey(subject, limit)

	var cached openlibrary.SubjectResponse
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("subject cache read failed")
	}
	if found {
		s.log.Debug().Str("key", key).Msg("subject cache hit")
		return &cached, nil
	}

	res, err := s.next.GetSubject(ctx, subject, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, res, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("subject cache write failed")
	}
	return res, nil
}
