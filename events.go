package lightning

import (
	"fmt"
	"time"
)

// EventKind identifies a segment transition.
type EventKind int

const (
	// EventSpawn is sent when a segment is spawned at the border.
	EventSpawn EventKind = iota

	// EventErase is sent when a segment has finished growing.
	EventErase

	// EventBranch is sent when a segment makes its branching decision.
	// Event.Children holds the number of branches actually added.
	EventBranch

	// EventRemove is sent when a segment leaves the active set.
	EventRemove
)

func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventErase:
		return "erase"
	case EventBranch:
		return "branch"
	case EventRemove:
		return "remove"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event describes a segment transition.
type Event struct {
	Kind     EventKind
	Time     time.Duration // animation time of the most recent frame
	Segment  *Segment
	Children int
}

// Stats holds counters describing the history of an Animation.
type Stats struct {
	Active    int // segments currently in the active set
	Spawned   int // segments spawned at the border
	Branches  int // branching decisions which succeeded
	Children  int // branch segments added to the active set
	Discarded int // branch segments dropped for leaving the surface
	Removed   int // segments which finished erasing
}
