package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLockSerializesSameKey(t *testing.T) {
	kl := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kl.Lock(1)
			counter++
			kl.Unlock(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyLockReleasesEntries(t *testing.T) {
	kl := New()
	kl.Lock(42)
	kl.Unlock(42)

	kl.mu.Lock()
	defer kl.mu.Unlock()
	assert.Empty(t, kl.locks)
}
