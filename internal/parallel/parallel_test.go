package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), {Workers: 3, MinJobs: 1}, {Workers: 1}} {
		t.Run(fmt.Sprintf("workers=%d", cfg.Workers), func(t *testing.T) {
			var counter int64
			seen := make([]bool, 100)
			err := Run(len(seen), func(i int) error {
				atomic.AddInt64(&counter, 1)
				seen[i] = true
				return nil
			}, cfg)
			require.NoError(t, err)
			assert.Equal(t, int64(100), counter)
			for i, ok := range seen {
				assert.True(t, ok, "job %d did not run", i)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	errOdd := errors.New("odd")
	err := Run(10, func(i int) error {
		if i%2 == 1 {
			return fmt.Errorf("job %d: %w", i, errOdd)
		}
		return nil
	}, Config{Workers: 4, MinJobs: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, errOdd)
	assert.Contains(t, err.Error(), "job 1: odd\njob 3: odd")
}

func TestRun_Empty(t *testing.T) {
	assert.NoError(t, Run(0, func(int) error {
		t.Fatal("job called")
		return nil
	}, DefaultConfig()))
}
