package types

// Event type identifiers. Seeded once with these literal ids and immutable
// thereafter; the resurrect and death types drive the character's derived
// living status.
const (
	EventTypeCombat    int64 = 1
	EventTypeNonCombat int64 = 2
	EventTypeResurrect int64 = 3
	EventTypeDeath     int64 = 4
)

// DateLayout is the storage format for event dates.
const DateLayout = "2006-01-02"

// StatusForEventType returns the character status implied by an event type:
// resurrect implies alive, death implies dead. The second return is false
// for event types that do not affect status.
func StatusForEventType(typeID int64) (string, bool) {
	switch typeID {
	case EventTypeResurrect:
		return StatusAlive, true
	case EventTypeDeath:
		return StatusDead, true
	default:
		return "", false
	}
}

// Event represents a logged occurrence: a fight, an adventure milestone, a
// death, or a resurrection. Experience is nil for resurrect/death events.
type Event struct {
	EventID        int64
	EventTypeID    int64
	TypeName       string // Populated by reads that join event_types.
	CharacterCount int64  // How many characters split the experience.
	Date           string // DateLayout format; defaults to today on insert.
	Experience     *int64 // Nil when the event grants none.
	Description    string
	Details        []EventDetail // Populated by reads; supplied separately on writes.
}

// Validate checks the business-rule shape of the event.
func (e *Event) Validate() error {
	if e == nil {
		return ErrNilRecord
	}
	if e.EventTypeID <= 0 {
		return ErrInvalidID
	}
	if e.CharacterCount <= 0 {
		e.CharacterCount = 1
	}
	if e.Experience != nil {
		if _, lifecycle := StatusForEventType(e.EventTypeID); lifecycle {
			return ErrLifecycleXP
		}
	}
	return nil
}

// EventDetail names one thing that happened within an event, such as a
// creature fought. DetailID is sequential within its event, not globally
// unique; the composite identity is (DetailID, EventID).
type EventDetail struct {
	DetailID      int64
	EventID       int64
	Name          string
	CreatureCount *int64 // Nil when no creature count applies.
}
