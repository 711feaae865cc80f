package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	errTemporary := errors.New("temporary")
	errFatal := errors.New("fatal")

	fast := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond}

	testCases := []struct {
		name         string
		cfg          RetryConfig
		results      []error
		nonRetryable []error
		wantCalls    int
		wantErr      error
	}{
		{
			name:      "success on first attempt",
			cfg:       fast,
			results:   []error{nil},
			wantCalls: 1,
		},
		{
			name:      "success after failures",
			cfg:       fast,
			results:   []error{errTemporary, errTemporary, nil},
			wantCalls: 3,
		},
		{
			name:      "attempts exhausted",
			cfg:       fast,
			results:   []error{errTemporary, errTemporary, errTemporary},
			wantCalls: 3,
			wantErr:   errTemporary,
		},
		{
			name:         "non retryable error stops immediately",
			cfg:          fast,
			results:      []error{errFatal},
			nonRetryable: []error{errFatal},
			wantCalls:    1,
			wantErr:      errFatal,
		},
		{
			name: "predicate rejects error",
			cfg: RetryConfig{
				MaxAttempts:  3,
				InitialDelay: time.Millisecond,
				Retryable:    func(err error) bool { return !errors.Is(err, errFatal) },
			},
			results:   []error{errTemporary, errFatal},
			wantCalls: 2,
			wantErr:   errFatal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tc.cfg, func() error {
				err := tc.results[calls]
				calls++
				return err
			}, tc.nonRetryable...)

			assert.Equal(t, tc.wantCalls, calls)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errTemporary := errors.New("temporary")

	calls := 0
	err := Retry(ctx, RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour}, func() error {
		calls++
		cancel()
		return errTemporary
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, errTemporary)
	assert.ErrorIs(t, err, context.Canceled)
}
