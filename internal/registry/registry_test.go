package registry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/cc-orchestrator/internal/domain"
)

func TestPutGet_NormalizesKeys(t *testing.T) {
	r := New()

	r.Put(domain.SessionInfo{SessionName: "demo", InstanceID: "i1"})

	byShort, ok := r.Get("demo")
	require.True(t, ok)
	byFull, ok := r.Get("cc-orchestrator-demo")
	require.True(t, ok)

	assert.Equal(t, byShort, byFull)
	assert.Equal(t, "cc-orchestrator-demo", byShort.SessionName)
	assert.Equal(t, 1, r.Len())
}

func TestGet_ReturnsCopy(t *testing.T) {
	r := New()
	r.Put(domain.SessionInfo{SessionName: "a", Windows: []string{"main"}})

	info, _ := r.Get("a")
	info.Windows[0] = "changed"

	again, _ := r.Get("a")
	assert.Equal(t, "main", again.Windows[0])
}

func TestDelete(t *testing.T) {
	r := New()
	r.Put(domain.SessionInfo{SessionName: "a"})

	assert.True(t, r.Delete("cc-orchestrator-a"))
	assert.False(t, r.Delete("a"), "absent entries are tolerated")
	assert.False(t, r.Has("a"))
}

func TestUpdate_OnlyTracked(t *testing.T) {
	r := New()
	called := false

	assert.False(t, r.Update("ghost", func(*domain.SessionInfo) { called = true }))
	assert.False(t, called)

	r.Put(domain.SessionInfo{SessionName: "a"})
	assert.True(t, r.Update("a", func(info *domain.SessionInfo) { info.AttachedClients = 3 }))

	info, _ := r.Get("a")
	assert.Equal(t, 3, info.AttachedClients)
}

func TestSetStatus_RespectsTransitions(t *testing.T) {
	r := New()
	now := time.Now()
	r.Put(domain.SessionInfo{SessionName: "a", Status: domain.StatusActive})

	assert.True(t, r.SetStatus("a", domain.StatusDetached, now))
	info, _ := r.Get("a")
	assert.Equal(t, domain.StatusDetached, info.Status)
	require.NotNil(t, info.LastActivity)
	assert.Equal(t, now, *info.LastActivity)

	r.Put(domain.SessionInfo{SessionName: "b", Status: domain.StatusError})
	assert.False(t, r.SetStatus("b", domain.StatusActive, now))

	assert.False(t, r.SetStatus("ghost", domain.StatusActive, now))
}

func TestSnapshot_SortedAndDetached(t *testing.T) {
	r := New()
	r.Put(domain.SessionInfo{SessionName: "b"})
	r.Put(domain.SessionInfo{SessionName: "a"})

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "cc-orchestrator-a", snap[0].SessionName)

	r.Delete("a")
	assert.Len(t, snap, 2, "snapshot must not observe later mutation")
}

func TestNames(t *testing.T) {
	r := New()
	r.Put(domain.SessionInfo{SessionName: "a"})

	names := r.Names()
	assert.Contains(t, names, "cc-orchestrator-a")
}

func TestLock_SerializesSameName(t *testing.T) {
	r := New()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := r.Lock("same")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestLock_DifferentNamesIndependent(t *testing.T) {
	r := New()

	unlockA := r.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := r.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
	unlockA()
}

func TestLock_ReleasedMutexesAreDropped(t *testing.T) {
	r := New()

	for i := 0; i < 50; i++ {
		unlock := r.Lock(fmt.Sprintf("s%d", i))
		unlock()
	}
	assert.Zero(t, r.lockCount())

	unlock := r.Lock("held")
	assert.Equal(t, 1, r.lockCount())
	unlock()
	unlock()
	assert.Zero(t, r.lockCount(), "a second release must be a no-op")
}

func TestLock_KeptWhileWaitersRemain(t *testing.T) {
	r := New()
	unlock := r.Lock("busy")

	acquired := make(chan func())
	go func() { acquired <- r.Lock("cc-orchestrator-busy") }()

	// The waiter shares the held mutex, so the entry outlives the first release
	require.Eventually(t, func() bool {
		r.locksMu.Lock()
		defer r.locksMu.Unlock()
		return r.locks["cc-orchestrator-busy"].refs == 2
	}, time.Second, time.Millisecond)
	unlock()

	second := <-acquired
	assert.Equal(t, 1, r.lockCount())
	second()
	assert.Zero(t, r.lockCount())
}
