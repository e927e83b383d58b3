package sqlite

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/chronicle/pkg/types"
)

func TestAddRaceInsertIfAbsent(t *testing.T) {
	s, _ := setupStore(t)

	id, inserted, err := s.AddRace("Tiefling")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Greater(t, id, int64(0))

	// Colliding with an existing unique name is a no-op success.
	_, inserted, err = s.AddRace("Tiefling")
	require.NoError(t, err)
	assert.False(t, inserted)

	races, err := s.Races()
	require.NoError(t, err)
	assert.Len(t, races, len(defaultRaces)+1)
}

func TestAddRaceRejectsEmptyName(t *testing.T) {
	s, _ := setupStore(t)

	_, _, err := s.AddRace("")
	assert.ErrorIs(t, err, types.ErrInvalidName)
	_, _, err = s.AddClass("")
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestAddClassInsertIfAbsent(t *testing.T) {
	s, _ := setupStore(t)

	// "Wizard" is seeded by default.
	_, inserted, err := s.AddClass("Wizard")
	require.NoError(t, err)
	assert.False(t, inserted)

	id, inserted, err := s.AddClass("Warlock")
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Greater(t, id, int64(0))
}

func TestDeleteRaceBlockedByReference(t *testing.T) {
	s, _ := setupStore(t)

	races, err := s.Races()
	require.NoError(t, err)
	classes, err := s.Classes()
	require.NoError(t, err)

	_, err = s.AddCharacter(&types.Character{
		RaceID:  races[0].ID,
		ClassID: classes[0].ID,
		Name:    "Brunhilda",
	})
	require.NoError(t, err)

	// Referenced race: delete is a conditional no-op, not an error.
	deleted, err := s.DeleteRace(races[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	after, err := s.Races()
	require.NoError(t, err)
	assert.Len(t, after, len(races), "blocked delete leaves the table unchanged")

	// Unreferenced race: delete removes exactly one row.
	deleted, err = s.DeleteRace(races[1].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	after, err = s.Races()
	require.NoError(t, err)
	assert.Len(t, after, len(races)-1)
}

func TestDeleteClassBlockedByReference(t *testing.T) {
	s, _ := setupStore(t)

	races, err := s.Races()
	require.NoError(t, err)
	classes, err := s.Classes()
	require.NoError(t, err)

	_, err = s.AddCharacter(&types.Character{
		RaceID:  races[0].ID,
		ClassID: classes[0].ID,
		Name:    "Mordecai",
	})
	require.NoError(t, err)

	deleted, err := s.DeleteClass(classes[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.DeleteClass(classes[1].ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestRacesOrderedByName(t *testing.T) {
	s, _ := setupStore(t)

	_, _, err := s.AddRace("Aarakocra")
	require.NoError(t, err)

	races, err := s.Races()
	require.NoError(t, err)

	names := make([]string, len(races))
	for i, r := range races {
		names[i] = r.Name
	}
	assert.True(t, sort.StringsAreSorted(names), "races must be ordered by name: %v", names)
	assert.Equal(t, "Aarakocra", names[0])
}

func TestDeleteReferenceRejectsInvalidID(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.DeleteRace(0)
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = s.DeleteClass(-3)
	assert.ErrorIs(t, err, types.ErrInvalidID)
}
