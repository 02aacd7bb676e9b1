package assistant

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_History(t *testing.T) {
	s := NewSession(0)
	assert.NotEmpty(t, s.ID)

	assert.True(t, s.Record("a"))
	assert.True(t, s.Record("b"))
	assert.False(t, s.Record("b"))

	code, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", code)

	code, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, "b", code)

	state := s.State()
	assert.Equal(t, []string{"a", "b"}, state.Snapshots)
	assert.Equal(t, 1, state.Position)
}

func TestSession_Subscribe(t *testing.T) {
	s := NewSession(0)
	ch, cancel := s.Subscribe()

	s.Record("a")
	assert.Equal(t, "a", <-ch)

	s.Record("b")
	s.Record("c")
	assert.Equal(t, "c", <-ch, "slow readers only see the latest snapshot")

	s.Undo()
	assert.Equal(t, "b", <-ch)

	_, ok := s.Redo()
	require.True(t, ok)
	assert.Equal(t, "c", <-ch)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)

	assert.NotPanics(t, func() { s.Record("d") })
}

func TestSession_ConcurrentRecord(t *testing.T) {
	s := NewSession(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Record(string(rune('a' + i%26)))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, len(s.State().Snapshots)-1, s.State().Position)
}

func TestStore(t *testing.T) {
	st := NewStore(StoreOptions{HistoryLimit: 10})
	s := st.Create()

	got, ok := st.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	again, created := st.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	other, created := st.GetOrCreate("unknown")
	assert.True(t, created)
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, 2, st.Len())
}

// fakeClock returns a store clock that advances by one second per call.
func fakeClock(st *Store) {
	now := time.Unix(0, 0)
	st.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	st := NewStore(StoreOptions{MaxSessions: 3})
	fakeClock(st)

	first := st.Create()
	second := st.Create()
	third := st.Create()

	// Touching first makes second the oldest.
	_, ok := st.Get(first.ID)
	require.True(t, ok)

	fourth := st.Create()
	assert.Equal(t, 3, st.Len())

	_, ok = st.Get(second.ID)
	assert.False(t, ok, "least recently used session is evicted")
	for _, s := range []*Session{first, third, fourth} {
		_, ok := st.Get(s.ID)
		assert.True(t, ok)
	}
}

func TestStore_CapHoldsUnderManyCreates(t *testing.T) {
	st := NewStore(StoreOptions{MaxSessions: 10})
	for i := 0; i < 1000; i++ {
		st.Create()
	}
	assert.Equal(t, 10, st.Len())
}

func TestStore_DefaultMaxSessions(t *testing.T) {
	st := NewStore(StoreOptions{})
	for i := 0; i < DefaultMaxSessions+5; i++ {
		st.Create()
	}
	assert.Equal(t, DefaultMaxSessions, st.Len())
}

func TestStore_Prune(t *testing.T) {
	st := NewStore(StoreOptions{})
	fakeClock(st)

	stale := st.Create()    // used at t=1s
	fresh := st.Create()    // used at t=2s
	_, _ = st.Get(fresh.ID) // t=3s

	// The prune call reads t=4s, so the cutoff is t=2s.
	assert.Equal(t, 1, st.Prune(2*time.Second))

	_, ok := st.Get(stale.ID)
	assert.False(t, ok)
	_, ok = st.Get(fresh.ID)
	assert.True(t, ok)
}
