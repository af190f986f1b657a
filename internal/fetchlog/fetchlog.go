// Package fetchlog records every attempt of the catalog loader to fetch the listing.
package fetchlog

import (
	"context"
	"time"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

type Run struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     *time.Time
	Status         string // RUNNING, COMPLETED, FAILED
	Subject        string
	RequestedLimit int
	RecordsFetched int
	Error          string
}

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks booklist/internal/fetchlog Repository

type Repository interface {
	CreateRun(ctx context.Context, run *Run) (string, error)
	UpdateRun(ctx context.Context, run *Run) error
	LatestRuns(ctx context.Context, limit int) ([]Run, error)
}

// Nop discards runs. It is used when no database is configured.
type Nop struct{}

func (Nop) CreateRun(context.Context, *Run) (string, error) { return "", nil }

func (Nop) UpdateRun(context.Context, *Run) error { return nil }

func (Nop) LatestRuns(context.Context, int) ([]Run, error) { return nil, nil }
