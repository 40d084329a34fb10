package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// --- Exponential ---

func TestExponential_SuccessImmediate(t *testing.T) {
	err := Exponential(func() error { return nil }, ExponentialConfig{
		InitialInterval: 5 * time.Millisecond,
		MaxElapsedTime:  100 * time.Millisecond,
	})
	assert.NoError(t, err)
}

func TestExponential_RetryThenSuccess(t *testing.T) {
	var calls int
	var onRetryCount int

	err := Exponential(func() error {
		if calls < 3 {
			calls++
			return errors.New("temporary error")
		}
		return nil
	}, ExponentialConfig{
		InitialInterval: 2 * time.Millisecond,
		MaxElapsedTime:  200 * time.Millisecond,
		OnRetry: func(err error, next time.Duration) {
			onRetryCount++
			assert.Error(t, err)
			assert.Greater(t, next, time.Duration(0))
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls, "should retry exactly 3 times before success")
	// OnRetry is called for each failed attempt
	assert.Equal(t, 3, onRetryCount)
}

func TestExponential_InvalidConfig(t *testing.T) {
	err := Exponential(func() error { return nil }, ExponentialConfig{
		InitialInterval: 0, // invalid
	})
	assert.Error(t, err)
}

// --- Constant ---

func TestConstant_SuccessFirstTry(t *testing.T) {
	var calls int
	err := Constant(func() error {
		calls++
		return nil
	}, time.Millisecond, 3)
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConstant_Exhausted(t *testing.T) {
	var calls int
	err := Constant(func() error {
		calls++
		return errors.New("always fail")
	}, time.Millisecond, 3)
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}
