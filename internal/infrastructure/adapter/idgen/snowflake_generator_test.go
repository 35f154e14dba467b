package idgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeGenerator_UniqueAndIncreasing(t *testing.T) {
	gen, err := NewSnowflakeGenerator(1)
	require.NoError(t, err)

	prev := gen.NextID()
	for i := 0; i < 1000; i++ {
		next := gen.NextID()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestSnowflakeGenerator_Concurrent(t *testing.T) {
	gen, err := NewSnowflakeGenerator(7)
	require.NoError(t, err)

	const workers, perWorker = 8, 500
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- gen.NextID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestNewSnowflakeGenerator_RejectsBadNode(t *testing.T) {
	_, err := NewSnowflakeGenerator(4096)
	assert.Error(t, err)
}
