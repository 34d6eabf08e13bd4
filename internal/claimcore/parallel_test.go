package claimcore

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanOrder(t *testing.T) {
	results := Scan(context.Background(), 20, 4, 1000, func(ctx context.Context, i int) (string, error) {
		return fmt.Sprintf("item-%d", i), nil
	})

	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.NoError(t, r.Err)
		assert.Equal(t, fmt.Sprintf("item-%d", i), r.Value)
	}
}

func TestScanKeepsPerItemErrors(t *testing.T) {
	wantErr := errors.New("query failed")
	results := Scan(context.Background(), 5, 2, 1000, func(ctx context.Context, i int) (int, error) {
		if i == 3 {
			return 0, wantErr
		}
		return i * 2, nil
	})

	for i, r := range results {
		if i == 3 {
			assert.ErrorIs(t, r.Err, wantErr)
			continue
		}
		require.NoError(t, r.Err)
		assert.Equal(t, i*2, r.Value)
	}
}

func TestScanBoundsConcurrency(t *testing.T) {
	var current, peak atomic.Int32
	_ = Scan(context.Background(), 30, 3, 1000, func(ctx context.Context, i int) (struct{}, error) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		defer current.Add(-1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestScanCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Scan(ctx, 4, 2, 1000, func(ctx context.Context, i int) (int, error) {
		return i, nil
	})

	require.Len(t, results, 4)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestScanZeroItems(t *testing.T) {
	results := Scan(context.Background(), 0, 2, 10, func(ctx context.Context, i int) (int, error) {
		t.Fatal("should not be called")
		return 0, nil
	})
	assert.Empty(t, results)
}
