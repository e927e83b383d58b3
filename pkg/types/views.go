package types

// CharacterSummary is a character joined with its race and class names,
// as returned by list queries. No experience total is computed.
type CharacterSummary struct {
	CharacterID int64
	Name        string
	RaceName    string
	ClassName   string
	Status      string
}

// CharacterProfile is a single character with race/class names and the
// total experience aggregated from its event history. Each event
// contributes experience divided by the number of characters that split
// it, using the storage engine's integer division.
type CharacterProfile struct {
	CharacterSummary
	RaceID     int64
	ClassID    int64
	Details    string
	Experience int64
}
