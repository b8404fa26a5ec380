package extsdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventClone(t *testing.T) {
	ev := Event{"prompt": "hi", "mode": "agent"}
	cl := ev.Clone()

	cl["prompt"] = "changed"
	cl.SetBlocked(true)

	assert.Equal(t, "hi", ev["prompt"], "clone must not mutate the original")
	assert.False(t, ev.Blocked())
	assert.True(t, cl.Blocked())
}

func TestEventCloneNil(t *testing.T) {
	var ev Event
	cl := ev.Clone()
	assert.NotNil(t, cl)
	assert.Empty(t, cl)
}

func TestEventMerge(t *testing.T) {
	ev := Event{"prompt": "hi", "mode": "agent"}
	ev.Merge(Event{"prompt": "hi!", "extra": 1})

	assert.Equal(t, "hi!", ev["prompt"])
	assert.Equal(t, "agent", ev["mode"])
	assert.Equal(t, 1, ev["extra"])
}

func TestEventBlockedRequiresBool(t *testing.T) {
	ev := Event{KeyBlocked: "yes"}
	assert.False(t, ev.Blocked(), "non-bool blocked value is not a block signal")

	ev = Event{KeyBlocked: true}
	assert.True(t, ev.Blocked())
}

func TestEventNamesStable(t *testing.T) {
	names := EventNames()
	assert.Equal(t, names, EventNames())
	assert.Contains(t, names, EventPromptStarted)

	assert.True(t, IsEventName(EventToolCallStarted))
	assert.False(t, IsEventName("OnSomethingElse"))
}
