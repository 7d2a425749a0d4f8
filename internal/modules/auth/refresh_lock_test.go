package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockManager_SerializesSameDigest(t *testing.T) {
	m := NewLockManager()

	const workers = 16
	var (
		wg       sync.WaitGroup
		inside   int
		maxSeen  int
		sectionM sync.Mutex
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.WithLock("digest-a", func() error {
				sectionM.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				sectionM.Unlock()

				sectionM.Lock()
				inside--
				sectionM.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen, "critical section must never overlap")
	assert.Equal(t, 0, m.Len())
}

func TestLockManager_DistinctDigestsDoNotBlock(t *testing.T) {
	m := NewLockManager()

	aEntered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = m.WithLock("digest-a", func() error {
			close(aEntered)
			<-release
			return nil
		})
	}()

	<-aEntered
	go func() {
		// Must proceed while digest-a's lock is still held.
		_ = m.WithLock("digest-b", func() error { return nil })
		close(done)
	}()

	<-done
	close(release)
}

func TestLockManager_PropagatesError(t *testing.T) {
	m := NewLockManager()

	err := m.WithLock("d", func() error { return assert.AnError })
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, m.Len())
}

func TestLockManager_EntryReclaimedAfterLastWaiter(t *testing.T) {
	m := NewLockManager()

	require.NoError(t, m.WithLock("d", func() error {
		assert.Equal(t, 1, m.Len())
		return nil
	}))
	assert.Equal(t, 0, m.Len())
}
