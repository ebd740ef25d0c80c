package transcript

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/copilotcli/activity"
)

// Interface compliance (compile-time assertion)
var _ Store = (*InMemoryStore)(nil)

func TestInMemoryStore_RecordAndRead(t *testing.T) {
	s := NewInMemoryStore()
	s.Record("conv-1", *activity.NewMessage("one"))
	s.Record("conv-1", *activity.NewMessage("two"))
	s.Record("", *activity.NewTyping())

	recorded := s.Activities("conv-1")
	require.Len(t, recorded, 2)
	assert.Equal(t, "one", recorded[0].Text)
	assert.Equal(t, "two", recorded[1].Text)

	assert.Len(t, s.Activities(""), 1)
	assert.Empty(t, s.Activities("unknown"))
	assert.ElementsMatch(t, []string{"conv-1", ""}, s.Conversations())
}

func TestInMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewInMemoryStore()
	s.Record("conv-1", *activity.NewMessage("original"))

	got := s.Activities("conv-1")
	got[0].Text = "mutated"

	assert.Equal(t, "original", s.Activities("conv-1")[0].Text)
}

func TestInMemoryStore_ConcurrentRecord(t *testing.T) {
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Record("conv-1", *activity.NewMessage("turn"))
			}
		}()
	}
	wg.Wait()

	assert.Len(t, s.Activities("conv-1"), 400)
}
