package types

// Character living status values. Status is a derived field: its
// authoritative value is a function of the character's resurrect/death
// event history, but it is also stored on the row and kept in sync by
// every write that can change it.
const (
	StatusAlive = "alive"
	StatusDead  = "dead"
)

// validStatuses is the set of recognized character status values.
var validStatuses = map[string]bool{
	StatusAlive: true,
	StatusDead:  true,
}

// ValidStatus reports whether s is a recognized character status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Character represents a player character.
type Character struct {
	CharacterID int64  // Generated on creation.
	RaceID      int64  // References a Race.
	ClassID     int64  // References a CharacterClass.
	Name        string // Required, non-empty.
	Status      string // StatusAlive or StatusDead; defaults to alive.
	Details     string // Free-form notes, optional.
}

// Validate checks the business-rule shape of the character. An empty
// status is filled in as alive.
func (c *Character) Validate() error {
	if c == nil {
		return ErrNilRecord
	}
	if c.Name == "" {
		return ErrInvalidName
	}
	if c.Status == "" {
		c.Status = StatusAlive
	}
	if !validStatuses[c.Status] {
		return ErrInvalidStatus
	}
	return nil
}

// Alive reports whether the character's cached status is alive.
func (c *Character) Alive() bool {
	return c.Status == StatusAlive
}
