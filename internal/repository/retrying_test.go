package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"academy-service/internal/ports/academytx"
	"academy-service/internal/ports/academytx/academytxmock"
	"academy-service/internal/testutil/testlog"
)

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }

func (c *counterStub) Count() int64 { return atomic.LoadInt64(&c.n) }

func pgErr(code string) error {
	return fmt.Errorf("commit tx: %w", &pgconn.PgError{Code: code})
}

func noop(academytx.Repository) error { return nil }

func TestRetryingRunner_RetriesTransientThenSucceeds(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	next := academytxmock.NewMockRunner(ctrl)
	gomock.InOrder(
		next.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(pgErr("40001")),
		next.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(pgErr("40P01")),
		next.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(nil),
	)

	rec := testlog.New()
	ctr := &counterStub{}
	r := NewRetryingRunner(next, rec.Logger(), ctr, RetryConfig{MaxAttempts: 5})

	require.NoError(t, r.WithTx(context.Background(), noop))
	require.Equal(t, int64(2), ctr.Count())
	require.Len(t, rec.ByMsg("unit of work retry"), 2)
}

func TestRetryingRunner_NoRetryOnDomainError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	next := academytxmock.NewMockRunner(ctrl)
	domainErr := errors.New("the course with id 1 doesn't exist in the database")
	next.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(domainErr).Times(1)

	ctr := &counterStub{}
	r := NewRetryingRunner(next, nil, ctr, RetryConfig{MaxAttempts: 3})

	require.ErrorIs(t, r.WithTx(context.Background(), noop), domainErr)
	require.Zero(t, ctr.Count())
}

func TestRetryingRunner_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	next := academytxmock.NewMockRunner(ctrl)
	next.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(pgErr("40001")).Times(3)

	r := NewRetryingRunner(next, nil, nil, RetryConfig{MaxAttempts: 3})

	err := r.WithTx(context.Background(), noop)
	require.Error(t, err)
	require.True(t, IsTransient(err))
}

func TestRetryingRunner_StopsWhenContextDone(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	next := academytxmock.NewMockRunner(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	next.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, func(academytx.Repository) error) error {
			cancel()
			return pgErr("40001")
		}).Times(1)

	r := NewRetryingRunner(next, nil, nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Second, MaxDelay: time.Second})
	require.Error(t, r.WithTx(ctx, noop))
}

func TestRetryingRunner_ZeroAttemptsRunsOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	next := academytxmock.NewMockRunner(ctrl)
	next.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	r := NewRetryingRunner(next, nil, nil, RetryConfig{})
	require.NoError(t, r.WithTx(context.Background(), noop))
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	base, max := 10*time.Millisecond, 50*time.Millisecond
	require.Equal(t, 10*time.Millisecond, backoff(base, max, 1))
	require.Equal(t, 20*time.Millisecond, backoff(base, max, 2))
	require.Equal(t, 40*time.Millisecond, backoff(base, max, 3))
	require.Equal(t, max, backoff(base, max, 4))
}

func TestBackoff_LargeAttemptStaysAtMax(t *testing.T) {
	t.Parallel()

	base, max := 10*time.Millisecond, 200*time.Millisecond
	for _, attempt := range []int{40, 41, 50, 63, 64, 100, 1 << 20} {
		require.Equal(t, max, backoff(base, max, attempt), "attempt %d", attempt)
	}
	require.Equal(t, base, backoff(base, max, 0))
}

func TestRetryingRunner_ReadTxUsesReadPath(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	next := academytxmock.NewMockRunner(ctrl)
	next.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(0)
	gomock.InOrder(
		next.EXPECT().WithReadTx(gomock.Any(), gomock.Any()).Return(pgErr("40001")),
		next.EXPECT().WithReadTx(gomock.Any(), gomock.Any()).Return(nil),
	)

	ctr := &counterStub{}
	r := NewRetryingRunner(next, nil, ctr, RetryConfig{MaxAttempts: 3})

	require.NoError(t, r.WithReadTx(context.Background(), noop))
	require.Equal(t, int64(1), ctr.Count())
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	require.True(t, IsDuplicate(pgErr("23505")))
	require.True(t, IsForeignKeyViolation(pgErr("23503")))
	require.True(t, IsTransient(pgErr("40P01")))
	require.False(t, IsTransient(pgErr("23505")))
	require.False(t, IsTransient(errors.New("plain")))
}
