package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StartsUnselected(t *testing.T) {
	t.Parallel()

	tr := New()
	_, ok := tr.Current()
	assert.False(t, ok, "selection must never auto-populate")
}

func TestTracker_SelectReplacesPrevious(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Select("PRJ-00001", SourceTable)
	tr.Select("PRJ-00002", SourceMap)

	id, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, "PRJ-00002", id, "selecting B after A leaves exactly B selected")
}

func TestTracker_Clear(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Select("PRJ-00001", SourceTable)
	tr.Clear(SourceTable)

	_, ok := tr.Current()
	assert.False(t, ok)
}

func TestTracker_ClearWhenUnselectedIsSilent(t *testing.T) {
	t.Parallel()

	tr := New()
	var events []Event
	tr.Subscribe(func(ev Event) { events = append(events, ev) })

	tr.Clear(SourceMap)
	assert.Empty(t, events)
}

func TestTracker_EmptyIDIsIgnored(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Select("", SourceTable)
	_, ok := tr.Current()
	assert.False(t, ok)
}

func TestTracker_NotifiesListeners(t *testing.T) {
	t.Parallel()

	tr := New()
	var events []Event
	tr.Subscribe(func(ev Event) { events = append(events, ev) })

	tr.Select("PRJ-00001", SourceTable)
	tr.Select("PRJ-00002", SourceMap)
	tr.Clear(SourceMap)

	require.Len(t, events, 3)
	assert.Equal(t, Event{ID: "PRJ-00001", Source: SourceTable, Selected: true}, events[0])
	assert.Equal(t, Event{ID: "PRJ-00002", Source: SourceMap, Selected: true}, events[1])
	assert.Equal(t, Event{Source: SourceMap, Selected: false}, events[2])
}
