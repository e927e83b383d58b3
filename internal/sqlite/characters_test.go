package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/chronicle/pkg/types"
)

func TestAddCharacterDefaultsToAlive(t *testing.T) {
	s, _ := setupStore(t)

	id := addTestCharacter(t, s, "Keth")

	profile, err := s.Character(id)
	require.NoError(t, err)
	assert.Equal(t, "Keth", profile.Name)
	assert.Equal(t, types.StatusAlive, profile.Status)
	assert.Equal(t, int64(0), profile.Experience)
	assert.NotEmpty(t, profile.RaceName)
	assert.NotEmpty(t, profile.ClassName)
}

func TestAddCharacterValidation(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.AddCharacter(nil)
	assert.ErrorIs(t, err, types.ErrNilRecord)

	_, err = s.AddCharacter(&types.Character{RaceID: 1, ClassID: 1})
	assert.ErrorIs(t, err, types.ErrInvalidName)

	_, err = s.AddCharacter(&types.Character{RaceID: 1, ClassID: 1, Name: "X", Status: "undead"})
	assert.ErrorIs(t, err, types.ErrInvalidStatus)
}

func TestUpdateCharacterFullReplace(t *testing.T) {
	s, _ := setupStore(t)

	id := addTestCharacter(t, s, "Keth")
	races, err := s.Races()
	require.NoError(t, err)
	classes, err := s.Classes()
	require.NoError(t, err)

	err = s.UpdateCharacter(&types.Character{
		CharacterID: id,
		RaceID:      races[2].ID,
		ClassID:     classes[2].ID,
		Name:        "Keth the Grey",
		Status:      types.StatusDead,
		Details:     "fell into the chasm",
	})
	require.NoError(t, err)

	profile, err := s.Character(id)
	require.NoError(t, err)
	assert.Equal(t, "Keth the Grey", profile.Name)
	assert.Equal(t, types.StatusDead, profile.Status)
	assert.Equal(t, races[2].ID, profile.RaceID)
	assert.Equal(t, classes[2].ID, profile.ClassID)
	assert.Equal(t, "fell into the chasm", profile.Details)
}

func TestUpdateCharacterNotFound(t *testing.T) {
	s, _ := setupStore(t)

	err := s.UpdateCharacter(&types.Character{
		CharacterID: 999, RaceID: 1, ClassID: 1, Name: "Ghost",
	})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCharacterExperienceAggregation(t *testing.T) {
	s, _ := setupStore(t)

	id := addTestCharacter(t, s, "Keth")

	// 100 xp split two ways, then 50 xp solo: 100/2 + 50/1 = 100.
	_, err := s.AddEvent(
		&types.Event{EventTypeID: types.EventTypeCombat, CharacterCount: 2, Experience: i64(100)},
		[]types.EventDetail{{Name: "Goblin ambush"}},
		id,
	)
	require.NoError(t, err)
	_, err = s.AddEvent(
		&types.Event{EventTypeID: types.EventTypeNonCombat, CharacterCount: 1, Experience: i64(50)},
		[]types.EventDetail{{Name: "Disarmed a trap"}},
		id,
	)
	require.NoError(t, err)
	// Null experience contributes nothing.
	_, err = s.AddEvent(
		&types.Event{EventTypeID: types.EventTypeDeath, CharacterCount: 1},
		[]types.EventDetail{{Name: "Crushed by a golem"}},
		id,
	)
	require.NoError(t, err)

	profile, err := s.Character(id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), profile.Experience)
}

func TestCharacterExperienceIntegerDivision(t *testing.T) {
	s, _ := setupStore(t)

	id := addTestCharacter(t, s, "Keth")

	// Sum of per-event quotients, each truncated: 100/3 = 33, 100/3 = 33,
	// total 66, not (100+100)/3 = 66.67 rounded.
	for i := 0; i < 2; i++ {
		_, err := s.AddEvent(
			&types.Event{EventTypeID: types.EventTypeCombat, CharacterCount: 3, Experience: i64(100)},
			[]types.EventDetail{{Name: "Skirmish"}},
			id,
		)
		require.NoError(t, err)
	}

	profile, err := s.Character(id)
	require.NoError(t, err)
	assert.Equal(t, int64(66), profile.Experience)
}

func TestCharacterNotFound(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Character(42)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.Character(0)
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestCharacterCountAndList(t *testing.T) {
	s, _ := setupStore(t)

	count, err := s.CharacterCount()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	addTestCharacter(t, s, "Zana")
	addTestCharacter(t, s, "Aldric")

	count, err = s.CharacterCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	list, err := s.Characters()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Aldric", list[0].Name, "characters are ordered by name")
	assert.Equal(t, "Zana", list[1].Name)
}

func TestDeleteCharacterCascades(t *testing.T) {
	s, _ := setupStore(t)

	victim := addTestCharacter(t, s, "Keth")
	bystander := addTestCharacter(t, s, "Zana")

	_, err := s.AddEvent(
		&types.Event{EventTypeID: types.EventTypeCombat, CharacterCount: 1, Experience: i64(10)},
		[]types.EventDetail{{Name: "Wolf pack", CreatureCount: i64(4)}, {Name: "Dire wolf"}},
		victim,
	)
	require.NoError(t, err)
	keptEvent, err := s.AddEvent(
		&types.Event{EventTypeID: types.EventTypeCombat, CharacterCount: 1, Experience: i64(10)},
		[]types.EventDetail{{Name: "Bandits"}},
		bystander,
	)
	require.NoError(t, err)

	require.NoError(t, s.DeleteCharacter(victim))

	_, err = s.Character(victim)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// No rows referencing the deleted character remain, and no detail is
	// orphaned from a surviving event.
	var joins int64
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM character_events WHERE character_id = ?", victim,
	).Scan(&joins))
	assert.Zero(t, joins)

	var orphans int64
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM event_details WHERE event_id NOT IN (SELECT event_id FROM events)",
	).Scan(&orphans))
	assert.Zero(t, orphans)
	var eventCount int64
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&eventCount))
	assert.Equal(t, int64(1), eventCount, "only the bystander's event survives")

	ev, err := s.Event(keptEvent)
	require.NoError(t, err)
	assert.Len(t, ev.Details, 1)
}
