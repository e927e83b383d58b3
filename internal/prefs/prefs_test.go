package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGet(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", s.Get("missing"))
	assert.False(t, s.GetBool("missing"))

	require.NoError(t, s.Set("campaign_id", "abc"))
	assert.Equal(t, "abc", s.Get("campaign_id"))

	require.NoError(t, s.SetBool(KeySchemaInitialized, true))
	assert.True(t, s.GetBool(KeySchemaInitialized))

	require.NoError(t, s.SetBool(KeySchemaInitialized, false))
	assert.False(t, s.GetBool(KeySchemaInitialized))
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Delete("a"))

	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, "", reopened.Get("a"))
	assert.Equal(t, "2", reopened.Get("b"))
}

func TestStoreDeleteAbsentKey(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.Delete("never-set"))
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
	assert.FileExists(t, filepath.Join(dir, fileName))
}
