package idgen

import (
	stderrors "errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbank/internal/errors"
)

func TestNextProducesFixedLengthDigits(t *testing.T) {
	g := New(DefaultLength, WithSource(rand.NewPCG(1, 2)))

	for i := 0; i < 50; i++ {
		id, err := g.Next(nil)
		require.NoError(t, err)
		assert.Len(t, id, DefaultLength)
		assert.True(t, isDigits(id), id)
	}
}

func TestNextIsDeterministicWithSeededSource(t *testing.T) {
	a := New(DefaultLength, WithSource(rand.NewPCG(42, 7)))
	b := New(DefaultLength, WithSource(rand.NewPCG(42, 7)))

	for i := 0; i < 10; i++ {
		idA, err := a.Next(nil)
		require.NoError(t, err)
		idB, err := b.Next(nil)
		require.NoError(t, err)
		assert.Equal(t, idA, idB)
	}
}

func TestNextSkipsExistingIdentifiers(t *testing.T) {
	reference := New(DefaultLength, WithSource(rand.NewPCG(9, 9)))
	first, err := reference.Next(nil)
	require.NoError(t, err)

	g := New(DefaultLength, WithSource(rand.NewPCG(9, 9)))
	id, err := g.Next(map[string]struct{}{first: {}})
	require.NoError(t, err)
	assert.NotEqual(t, first, id)
}

func TestNextAvoidsAllButOne(t *testing.T) {
	existing := map[string]struct{}{}
	for _, d := range "012345678" {
		existing[string(d)] = struct{}{}
	}

	g := New(1, WithSource(rand.NewPCG(3, 4)))
	id, err := g.Next(existing)
	require.NoError(t, err)
	assert.Equal(t, "9", id)
}

func TestNextSpaceExhausted(t *testing.T) {
	existing := map[string]struct{}{}
	for _, d := range "0123456789" {
		existing[string(d)] = struct{}{}
	}

	g := New(1, WithSource(rand.NewPCG(3, 4)))
	_, err := g.Next(existing)
	assert.True(t, stderrors.Is(err, errors.ErrIdentifierSpaceFull))
}

func TestNextRetryBudget(t *testing.T) {
	existing := map[string]struct{}{}
	for _, d := range "012345678" {
		existing[string(d)] = struct{}{}
	}

	// one draw is not enough to find the single free identifier every time
	g := New(1, WithSource(rand.NewPCG(5, 6)), WithMaxAttempts(1))
	failures := 0
	for i := 0; i < 20; i++ {
		if _, err := g.Next(existing); err != nil {
			assert.True(t, stderrors.Is(err, errors.ErrIdentifierSpaceFull))
			failures++
		}
	}
	assert.Positive(t, failures)
}

func TestNewDefaultsLength(t *testing.T) {
	assert.Equal(t, DefaultLength, New(0).Length())
}

func TestNextConcurrentCallers(t *testing.T) {
	g := New(DefaultLength, WithSource(rand.NewPCG(3, 4)))

	const workers, perWorker = 16, 50
	ids := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := g.Next(nil)
				if !assert.NoError(t, err) {
					return
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	count := 0
	for id := range ids {
		assert.Len(t, id, DefaultLength)
		assert.True(t, isDigits(id), id)
		count++
	}
	assert.Equal(t, workers*perWorker, count)
}
