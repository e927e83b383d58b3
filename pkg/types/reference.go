package types

// Race is reference data referenced by characters. Deletable only while no
// character references it.
type Race struct {
	RaceID int64
	Name   string // Unique.
}

// CharacterClass is reference data referenced by characters, with the same
// deletion constraint as Race.
type CharacterClass struct {
	ClassID int64
	Name    string // Unique.
}

// SelectEntry is an {id, name} pair used to populate selection lists.
type SelectEntry struct {
	ID   int64
	Name string
}
