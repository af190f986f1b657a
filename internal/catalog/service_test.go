package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"booklist/internal/fetchlog"
	"booklist/internal/fetchlog/mocks"
	"booklist/internal/platform/openlibrary"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) GetSubject(ctx context.Context, subject string, limit int) (*openlibrary.SubjectResponse, error) {
	args := m.Called(ctx, subject, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.SubjectResponse), args.Error(1)
}

func sampleResponse() *openlibrary.SubjectResponse {
	return &openlibrary.SubjectResponse{
		Works: []openlibrary.Work{
			{Key: "/works/OL1W", Title: "The Left Hand of Darkness", Authors: []openlibrary.Author{{Name: "Ursula K. Le Guin"}}},
			{Key: "/works/OL2W", Title: "Foundation", Authors: []openlibrary.Author{{Name: "Isaac Asimov"}}},
			{Key: "/works/OL3W", Title: "Anonymous"},
		},
	}
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes the base list", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetSubject", mock.Anything, DefaultSubject, DefaultLimit).Return(sampleResponse(), nil).Once()

		l := NewLoader(src, nil, Config{}, zerolog.Nop())
		assert.True(t, l.Loading())
		assert.Empty(t, l.Records())

		require.NoError(t, l.Load(ctx))

		assert.False(t, l.Loading())
		records := l.Records()
		require.Len(t, records, 3)
		assert.Equal(t, "Ursula K. Le Guin", records[0].AuthorName)
		assert.Equal(t, "Unknown", records[2].AuthorName)
		assert.NoError(t, l.Err())
		src.AssertExpectations(t)
	})

	t.Run("failure leaves an empty ready list", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetSubject", mock.Anything, "fantasy", 10).Return(nil, errors.New("connection refused")).Once()

		l := NewLoader(src, nil, Config{Subject: "fantasy", Limit: 10}, zerolog.Nop())
		err := l.Load(ctx)

		assert.ErrorIs(t, err, ErrFetchFailure)
		assert.False(t, l.Loading())
		assert.Empty(t, l.Records())
		assert.ErrorIs(t, l.Err(), ErrFetchFailure)
	})

	t.Run("fetches only once", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetSubject", mock.Anything, DefaultSubject, DefaultLimit).Return(sampleResponse(), nil)

		l := NewLoader(src, nil, Config{}, zerolog.Nop())
		l.Start(ctx)
		l.Start(ctx)
		require.NoError(t, l.Load(ctx))
		require.NoError(t, l.Load(ctx))

		src.AssertNumberOfCalls(t, "GetSubject", 1)
	})

	t.Run("callers cannot mutate the base list", func(t *testing.T) {
		src := new(mockSource)
		src.On("GetSubject", mock.Anything, DefaultSubject, DefaultLimit).Return(sampleResponse(), nil)

		l := NewLoader(src, nil, Config{}, zerolog.Nop())
		require.NoError(t, l.Load(ctx))

		records := l.Records()
		records[0].Title = "changed"
		assert.Equal(t, "The Left Hand of Darkness", l.Records()[0].Title)
	})

	t.Run("limit is capped", func(t *testing.T) {
		works := make([]openlibrary.Work, 250)
		for i := range works {
			works[i] = openlibrary.Work{Key: fmt.Sprintf("/works/OL%dW", i), Title: "Work"}
		}
		src := new(mockSource)
		src.On("GetSubject", mock.Anything, DefaultSubject, MaxLimit).Return(&openlibrary.SubjectResponse{Works: works}, nil).Once()

		l := NewLoader(src, nil, Config{Limit: 500}, zerolog.Nop())
		require.NoError(t, l.Load(ctx))

		assert.Len(t, l.Records(), MaxLimit)
		src.AssertExpectations(t)
	})

	t.Run("canceled context ends the fetch", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		src := new(mockSource)
		src.On("GetSubject", mock.Anything, DefaultSubject, DefaultLimit).Return(nil, context.Canceled)

		l := NewLoader(src, nil, Config{}, zerolog.Nop())
		l.Start(cctx)
		<-l.Done()

		assert.ErrorIs(t, l.Err(), context.Canceled)
		assert.Empty(t, l.Records())
	})
}

func TestLoader_RecordsRuns(t *testing.T) {
	ctx := context.Background()

	t.Run("completed run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		runs := mocks.NewMockRepository(ctrl)

		src := new(mockSource)
		src.On("GetSubject", mock.Anything, DefaultSubject, DefaultLimit).Return(sampleResponse(), nil)

		runs.EXPECT().CreateRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *fetchlog.Run) (string, error) {
			assert.Equal(t, fetchlog.StatusRunning, run.Status)
			assert.Equal(t, DefaultSubject, run.Subject)
			assert.Equal(t, DefaultLimit, run.RequestedLimit)
			return "run-1", nil
		})
		runs.EXPECT().UpdateRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *fetchlog.Run) error {
			assert.Equal(t, "run-1", run.ID)
			assert.Equal(t, fetchlog.StatusCompleted, run.Status)
			assert.Equal(t, 3, run.RecordsFetched)
			assert.NotNil(t, run.FinishedAt)
			return nil
		})

		l := NewLoader(src, runs, Config{}, zerolog.Nop())
		require.NoError(t, l.Load(ctx))
	})

	t.Run("failed run", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		runs := mocks.NewMockRepository(ctrl)

		src := new(mockSource)
		src.On("GetSubject", mock.Anything, DefaultSubject, DefaultLimit).Return(nil, errors.New("upstream down"))

		runs.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return("run-2", nil)
		runs.EXPECT().UpdateRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, run *fetchlog.Run) error {
			assert.Equal(t, fetchlog.StatusFailed, run.Status)
			assert.Equal(t, "upstream down", run.Error)
			assert.Equal(t, 0, run.RecordsFetched)
			return nil
		})

		l := NewLoader(src, runs, Config{}, zerolog.Nop())
		assert.ErrorIs(t, l.Load(ctx), ErrFetchFailure)
	})

	t.Run("run log failures do not affect the listing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		runs := mocks.NewMockRepository(ctrl)

		src := new(mockSource)
		src.On("GetSubject", mock.Anything, DefaultSubject, DefaultLimit).Return(sampleResponse(), nil)

		runs.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return("", errors.New("db down"))

		l := NewLoader(src, runs, Config{}, zerolog.Nop())
		require.NoError(t, l.Load(ctx))
		assert.Len(t, l.Records(), 3)
	})
}
