package sfftkrw_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	sff "github.com/emdb-empiar/sfftkrw"
)

func TestAllocators_StartValues(t *testing.T) {
	a := sff.NewAllocators()
	for _, k := range sff.IDKinds() {
		want := uint32(0)
		if k == sff.IDSegment {
			want = 1
		}
		require.Equal(t, want, a.For(k).StartAt(), k)
		require.Equal(t, want, a.Next(k), k)
	}
	a.ResetAll()
	require.Equal(t, uint32(1), a.Next(sff.IDSegment))
	require.Panics(t, func() { a.For("bogus") })
}

func TestIDAllocator_Step(t *testing.T) {
	al := sff.NewIDAllocator(10, 5)
	require.Equal(t, uint32(10), al.Next())
	require.Equal(t, uint32(15), al.Next())
	require.Equal(t, uint32(20), al.Peek())
	al.Update(100)
	require.Equal(t, uint32(100), al.Next())
	al.Reset()
	require.Equal(t, uint32(10), al.Next())

	require.Equal(t, uint32(1), sff.NewIDAllocator(0, 0).IncrementBy())
}

// TestIDAllocator_Concurrent hands out every id exactly once.
func TestIDAllocator_Concurrent(t *testing.T) {
	al := sff.NewIDAllocator(0, 1)
	const workers, per = 8, 250
	var (
		mu   sync.Mutex
		seen = map[uint32]bool{}
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range per {
				id := al.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, workers*per)
	require.Equal(t, uint32(workers*per), al.Peek())
}
