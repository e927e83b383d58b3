package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dukaforge/chronicle/internal/prefs"
	"github.com/dukaforge/chronicle/pkg/types"
)

func TestClearCharacterDataKeepsReferenceData(t *testing.T) {
	s, _ := setupStore(t)
	charID := addTestCharacter(t, s, "Keth")

	_, err := s.AddEvent(
		&types.Event{EventTypeID: types.EventTypeCombat, CharacterCount: 1, Experience: i64(20)},
		[]types.EventDetail{{Name: "Harpies"}},
		charID,
	)
	require.NoError(t, err)
	_, _, err = s.AddRace("Tiefling")
	require.NoError(t, err)

	require.NoError(t, s.ClearCharacterData())

	count, err := s.CharacterCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	var events int64
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&events))
	assert.Zero(t, events)

	races, err := s.Races()
	require.NoError(t, err)
	assert.Len(t, races, len(defaultRaces)+1, "races survive a character data clear")

	eventTypes, err := s.EventTypes()
	require.NoError(t, err)
	assert.Len(t, eventTypes, 4)

	// The recreated tables are usable immediately.
	addTestCharacter(t, s, "Zana")
}

func TestDropAllTablesResetsFlag(t *testing.T) {
	dir := t.TempDir()
	pf, err := prefs.Open(dir)
	require.NoError(t, err)

	s, err := Open(types.Config{DataDir: dir}, pf, zap.NewNop())
	require.NoError(t, err)

	addTestCharacter(t, s, "Keth")

	require.NoError(t, s.DropAllTables())
	assert.False(t, pf.GetBool(prefs.KeySchemaInitialized))
	require.NoError(t, s.Close())

	// Reopening reseeds from scratch.
	s, err = Open(types.Config{DataDir: dir}, pf, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, pf.GetBool(prefs.KeySchemaInitialized))
	count, err := s.CharacterCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	races, err := s.Races()
	require.NoError(t, err)
	assert.Len(t, races, len(defaultRaces))
}

func TestDropAllTablesRestoresFlagOnFailure(t *testing.T) {
	s, pf := setupStore(t)
	addTestCharacter(t, s, "Keth")
	require.True(t, pf.GetBool(prefs.KeySchemaInitialized))

	// Swap the events table for a view of the same name. DROP TABLE refuses
	// to drop a view, so the drop group fails partway through.
	_, err := s.db.Exec("ALTER TABLE events RENAME TO events_rows")
	require.NoError(t, err)
	_, err = s.db.Exec("CREATE VIEW events AS SELECT * FROM events_rows")
	require.NoError(t, err)

	err = s.DropAllTables()
	require.Error(t, err)

	// The schema is still in place, so the initialized flag is back on and
	// the store keeps working.
	assert.True(t, pf.GetBool(prefs.KeySchemaInitialized))
	count, err := s.CharacterCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
