package deck

import "fmt"

// EventType enumerates all observable deck changes.
type EventType int

const (
	EventCardAdded EventType = iota
	EventCardRemoved
	EventZoneCleared
	EventDeckCleared
	EventRenamed
	EventLoaded
)

func (e EventType) String() string {
	switch e {
	case EventCardAdded:
		return "CardAdded"
	case EventCardRemoved:
		return "CardRemoved"
	case EventZoneCleared:
		return "ZoneCleared"
	case EventDeckCleared:
		return "DeckCleared"
	case EventRenamed:
		return "Renamed"
	case EventLoaded:
		return "Loaded"
	default:
		return "Unknown"
	}
}

// Event describes a single successful mutation. Deck carries the full
// post-mutation snapshot, so a listener never has to read the engine back.
type Event struct {
	Seq     int       // monotonic sequence number
	Type    EventType // what happened
	Card    string    // card name, if a single card was involved
	Zone    Zone      // affected zone (EventCardAdded/EventCardRemoved/EventZoneCleared)
	Details string    // human-readable detail line
	Deck    Snapshot  // state after the mutation
}

// Listener receives events synchronously, in registration order, exactly
// once per successful mutating operation.
type Listener func(Event)

// --- Recorder: stores events for test assertions and change feeds ---

type Recorder struct {
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record is a Listener.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []Event {
	return r.events
}

// EventsOfType returns all recorded events matching the given type.
func (r *Recorder) EventsOfType(t EventType) []Event {
	var result []Event
	for _, e := range r.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (r *Recorder) LastEvent() Event {
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e Event) string {
	return fmt.Sprintf("#%-3d %-12s | %s", e.Seq, e.Type, e.Details)
}
