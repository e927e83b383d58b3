package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dukaforge/chronicle/internal/prefs"
	"github.com/dukaforge/chronicle/pkg/types"
)

// setupStore opens a store over a fresh temp directory. The store is closed
// automatically when the test finishes.
func setupStore(t *testing.T) (*Store, *prefs.Store) {
	t.Helper()

	dir := t.TempDir()
	pf, err := prefs.Open(dir)
	require.NoError(t, err)

	s, err := Open(types.Config{DataDir: dir}, pf, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, pf
}

// i64 returns a pointer to v for nullable columns.
func i64(v int64) *int64 {
	return &v
}

// addTestCharacter inserts a character against the first seeded race and
// class and returns its id.
func addTestCharacter(t *testing.T, s *Store, name string) int64 {
	t.Helper()

	races, err := s.Races()
	require.NoError(t, err)
	require.NotEmpty(t, races)
	classes, err := s.Classes()
	require.NoError(t, err)
	require.NotEmpty(t, classes)

	id, err := s.AddCharacter(&types.Character{
		RaceID:  races[0].ID,
		ClassID: classes[0].ID,
		Name:    name,
	})
	require.NoError(t, err)
	return id
}

func TestOpenSeedsDefaults(t *testing.T) {
	s, pf := setupStore(t)

	races, err := s.Races()
	require.NoError(t, err)
	assert.Len(t, races, len(defaultRaces))

	classes, err := s.Classes()
	require.NoError(t, err)
	assert.Len(t, classes, len(defaultClasses))

	eventTypes, err := s.EventTypes()
	require.NoError(t, err)
	require.Len(t, eventTypes, 4)
	assert.Equal(t, types.EventTypeCombat, eventTypes[0].ID)
	assert.Equal(t, types.EventTypeDeath, eventTypes[3].ID)

	assert.True(t, pf.GetBool(prefs.KeySchemaInitialized))
	assert.NotEmpty(t, pf.Get(prefs.KeyCampaignID))
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	_, err := Open(types.Config{}, nil, zap.NewNop())
	assert.ErrorIs(t, err, types.ErrDataDirEmpty)
}

func TestClosedStoreRejectsOperations(t *testing.T) {
	s, _ := setupStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "close is idempotent")

	_, err := s.CharacterCount()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	_, _, err = s.AddRace("Tiefling")
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	_, err = s.AddCharacter(&types.Character{RaceID: 1, ClassID: 1, Name: "Rega"})
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	err = s.ClearCharacterData()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestReopenAfterFlagLossDoesNotDuplicateSeeds(t *testing.T) {
	dir := t.TempDir()
	pf, err := prefs.Open(dir)
	require.NoError(t, err)

	s, err := Open(types.Config{DataDir: dir}, pf, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Simulate a lost initialized flag while the tables still exist.
	require.NoError(t, pf.SetBool(prefs.KeySchemaInitialized, false))

	s, err = Open(types.Config{DataDir: dir}, pf, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	races, err := s.Races()
	require.NoError(t, err)
	assert.Len(t, races, len(defaultRaces), "reseeding must not duplicate races")

	eventTypes, err := s.EventTypes()
	require.NoError(t, err)
	assert.Len(t, eventTypes, 4, "reseeding must not duplicate event types")
}

func TestCampaignIDSurvivesReseed(t *testing.T) {
	dir := t.TempDir()
	pf, err := prefs.Open(dir)
	require.NoError(t, err)

	s, err := Open(types.Config{DataDir: dir}, pf, zap.NewNop())
	require.NoError(t, err)
	first := pf.Get(prefs.KeyCampaignID)
	require.NoError(t, s.Close())

	require.NoError(t, pf.SetBool(prefs.KeySchemaInitialized, false))
	s, err = Open(types.Config{DataDir: dir}, pf, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, first, pf.Get(prefs.KeyCampaignID))
}
