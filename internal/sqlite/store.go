package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/dukaforge/chronicle/internal/prefs"
	"github.com/dukaforge/chronicle/pkg/types"
)

// dbFileName is the SQLite database file created under the data dir.
const dbFileName = "chronicle.db"

// Store is the chronicle storage layer over a single SQLite database.
// Grouped writes run in one transaction each; a failed statement rolls the
// whole group back before the error reaches the caller.
type Store struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sql.DB
	prefs  *prefs.Store
	log    *zap.Logger
}

// Open opens (or creates) the database under config.DataDir and makes sure
// the schema exists and the default reference data is seeded. Seeding is
// idempotent: it only runs while the schema-initialized flag is unset, and
// every seed insert is keyed on a unique name, so a lost flag never
// duplicates rows.
func Open(config types.Config, pf *prefs.Store, log *zap.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(config.DataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		config: config,
		db:     db,
		prefs:  pf,
		log:    log,
	}

	if err := s.ensureReady(); err != nil {
		db.Close()
		return nil, err
	}

	s.open = true
	return s, nil
}

// Close releases the database handle. Idempotent; after Close every
// operation returns types.ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	s.db = nil
	s.open = false
	return nil
}

// handle returns the database handle, or ErrStoreClosed when the store is
// not open. Every public operation goes through handle so call sites that
// did not check availability still get an error instead of a panic.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}
	return s.db, nil
}

// ensureReady creates the schema and seeds reference data when the
// schema-initialized flag is unset. The flag is set only after every seed
// statement committed, so a failure here leaves it unset and a later Open
// retries.
func (s *Store) ensureReady() error {
	if s.prefs.GetBool(prefs.KeySchemaInitialized) {
		return nil
	}

	for _, ddl := range schemaDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	if err := seedDefaults(s.db); err != nil {
		return err
	}

	if s.prefs.Get(prefs.KeyCampaignID) == "" {
		if err := s.prefs.Set(prefs.KeyCampaignID, newCampaignID()); err != nil {
			return fmt.Errorf("stamping campaign id: %w", err)
		}
	}

	if err := s.prefs.SetBool(prefs.KeySchemaInitialized, true); err != nil {
		return fmt.Errorf("setting initialized flag: %w", err)
	}

	s.log.Info("schema initialized",
		zap.String("data_dir", s.config.DataDir),
		zap.String("campaign_id", s.prefs.Get(prefs.KeyCampaignID)),
	)
	return nil
}

// newCampaignID generates the campaign identifier stamped into prefs on
// first seed.
func newCampaignID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
