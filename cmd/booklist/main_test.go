package main

import (
	"context"
	"testing"
	"time"

	"booklist/internal/config"
	"booklist/internal/platform/openlibrary"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	log = zerolog.Nop()
	t.Cleanup(func() { cfg = config.Config{} })

	t.Run("no redis configured", func(t *testing.T) {
		cfg = config.Config{}

		src, closeSource := newSource(context.Background())
		require.NotNil(t, closeSource)
		defer closeSource()

		assert.IsType(t, &openlibrary.Client{}, src)
	})

	t.Run("unreachable redis falls back to the client", func(t *testing.T) {
		cfg = config.Config{Redis: config.RedisConfig{Addr: "127.0.0.1:1", TTL: time.Minute}}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		src, closeSource := newSource(ctx)
		require.NotNil(t, closeSource)
		defer closeSource()

		assert.IsType(t, &openlibrary.Client{}, src)
	})
}

func TestFirstNonEmptyAndPositive(t *testing.T) {
	assert.Equal(t, "fantasy", firstNonEmpty("", "fantasy", "science_fiction"))
	assert.Equal(t, "", firstNonEmpty("", ""))
	assert.Equal(t, 50, firstPositive(0, -1, 50))
	assert.Equal(t, 0, firstPositive())
}
