// Package tracker is the caller-facing surface of the chronicle: it owns
// the store and the session together, so every mutating operation leaves
// the persisted session consistent with storage. Callers that only read can
// use the store directly; anything that writes goes through the tracker.
package tracker

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dukaforge/chronicle/internal/prefs"
	"github.com/dukaforge/chronicle/internal/session"
	"github.com/dukaforge/chronicle/internal/sqlite"
	"github.com/dukaforge/chronicle/pkg/types"
)

// Tracker coordinates the store and the session.
type Tracker struct {
	store *sqlite.Store
	prefs *prefs.Store
	sess  *session.Session
	log   *zap.Logger
}

// New loads the persisted session and returns a tracker over the store.
func New(store *sqlite.Store, pf *prefs.Store, log *zap.Logger) (*Tracker, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sess, err := session.Load(pf)
	if err != nil {
		return nil, err
	}
	return &Tracker{store: store, prefs: pf, sess: sess, log: log}, nil
}

// Session returns the current session state.
func (t *Tracker) Session() *session.Session {
	return t.sess
}

// Store returns the underlying store for read-only queries.
func (t *Tracker) Store() *sqlite.Store {
	return t.store
}

// AddCharacter creates a character and selects it as the current subject.
func (t *Tracker) AddCharacter(c *types.Character) (int64, error) {
	id, err := t.store.AddCharacter(c)
	if err != nil {
		return 0, err
	}
	t.sess.SetCharacter(id, c.Name, c.Status)
	if err := t.sess.Save(t.prefs); err != nil {
		return id, fmt.Errorf("character added but session not saved: %w", err)
	}
	return id, nil
}

// SelectCharacter makes an existing character the current subject.
func (t *Tracker) SelectCharacter(id int64) (*types.CharacterProfile, error) {
	profile, err := t.store.Character(id)
	if err != nil {
		return nil, err
	}
	t.sess.SetCharacter(profile.CharacterID, profile.Name, profile.Status)
	if err := t.sess.Save(t.prefs); err != nil {
		return profile, fmt.Errorf("character selected but session not saved: %w", err)
	}
	return profile, nil
}

// UpdateCharacter overwrites the character row and refreshes the session
// when it points at the updated character.
func (t *Tracker) UpdateCharacter(c *types.Character) error {
	if err := t.store.UpdateCharacter(c); err != nil {
		return err
	}
	if t.sess.CharacterID == c.CharacterID {
		t.sess.SetCharacter(c.CharacterID, c.Name, c.Status)
		if err := t.sess.Save(t.prefs); err != nil {
			return fmt.Errorf("character updated but session not saved: %w", err)
		}
	}
	return nil
}

// DeleteCharacter cascades the delete and clears the session when it
// pointed at the deleted character.
func (t *Tracker) DeleteCharacter(id int64) error {
	if err := t.store.DeleteCharacter(id); err != nil {
		return err
	}
	if t.sess.CharacterID == id {
		t.sess.ClearCharacter()
		if err := t.sess.Save(t.prefs); err != nil {
			return fmt.Errorf("character deleted but session not saved: %w", err)
		}
	}
	return nil
}

// AddEvent logs an event for the given character, selects it as the
// current event, and mirrors any status change into the session.
func (t *Tracker) AddEvent(ev *types.Event, details []types.EventDetail, characterID int64) (int64, error) {
	id, err := t.store.AddEvent(ev, details, characterID)
	if err != nil {
		return 0, err
	}
	t.sess.SetEvent(id)
	if status, ok := types.StatusForEventType(ev.EventTypeID); ok && t.sess.CharacterID == characterID {
		t.sess.CharacterAlive = status == types.StatusAlive
	}
	if err := t.sess.Save(t.prefs); err != nil {
		return id, fmt.Errorf("event added but session not saved: %w", err)
	}
	return id, nil
}

// UpdateEvent overwrites the event and its details. Never touches status,
// so the session needs no refresh.
func (t *Tracker) UpdateEvent(ev *types.Event, details []types.EventDetail) error {
	return t.store.UpdateEvent(ev, details)
}

// DeleteEvent removes the event and writes the recomputed living status
// into both storage and the session, so subsequent reads see the correct
// flag without re-querying.
func (t *Tracker) DeleteEvent(id, characterID int64) (string, error) {
	status, err := t.store.DeleteEvent(id, characterID)
	if err != nil {
		return "", err
	}
	if t.sess.CharacterID == characterID {
		t.sess.CharacterAlive = status == types.StatusAlive
	}
	if t.sess.EventID == id {
		t.sess.ClearEvent()
	}
	if err := t.sess.Save(t.prefs); err != nil {
		return status, fmt.Errorf("event deleted but session not saved: %w", err)
	}
	return status, nil
}

// AddRace inserts a race by unique name.
func (t *Tracker) AddRace(name string) (int64, bool, error) {
	return t.store.AddRace(name)
}

// AddClass inserts a character class by unique name.
func (t *Tracker) AddClass(name string) (int64, bool, error) {
	return t.store.AddClass(name)
}

// DeleteRace removes a race unless a character references it.
func (t *Tracker) DeleteRace(id int64) (bool, error) {
	return t.store.DeleteRace(id)
}

// DeleteClass removes a class unless a character references it.
func (t *Tracker) DeleteClass(id int64) (bool, error) {
	return t.store.DeleteClass(id)
}

// Reset clears all character data, keeping reference tables, and resets
// the session.
func (t *Tracker) Reset() error {
	if err := t.store.ClearCharacterData(); err != nil {
		return err
	}
	t.sess.ClearCharacter()
	if err := t.sess.Save(t.prefs); err != nil {
		return fmt.Errorf("data cleared but session not saved: %w", err)
	}
	t.log.Info("character data reset")
	return nil
}

// Purge drops every table so the next open reseeds, and resets the
// session.
func (t *Tracker) Purge() error {
	if err := t.store.DropAllTables(); err != nil {
		return err
	}
	t.sess.ClearCharacter()
	if err := t.sess.Save(t.prefs); err != nil {
		return fmt.Errorf("tables dropped but session not saved: %w", err)
	}
	t.log.Info("database purged")
	return nil
}
