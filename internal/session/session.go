// Package session tracks the "current subject" of the caller's workflow:
// which character and event the user is acting on. The session is an
// explicit object persisted through prefs, passed to whoever needs it, and
// cleared when the record it points at is deleted, so it never references
// a deleted id.
package session

import (
	"fmt"
	"strconv"

	"github.com/dukaforge/chronicle/internal/prefs"
	"github.com/dukaforge/chronicle/pkg/types"
)

// Prefs keys for the persisted session fields.
const (
	keyCharacterID    = "session.character_id"
	keyCharacterName  = "session.character_name"
	keyCharacterAlive = "session.character_alive"
	keyEventID        = "session.event_id"
)

// Session is the current-subject state. Zero values mean "nothing
// selected".
type Session struct {
	CharacterID    int64
	CharacterName  string
	CharacterAlive bool
	EventID        int64
}

// Load reads the persisted session from the prefs store. Absent keys leave
// zero values.
func Load(p *prefs.Store) (*Session, error) {
	s := &Session{
		CharacterName:  p.Get(keyCharacterName),
		CharacterAlive: p.GetBool(keyCharacterAlive),
	}

	var err error
	s.CharacterID, err = parseID(p.Get(keyCharacterID))
	if err != nil {
		return nil, fmt.Errorf("loading session character id: %w", err)
	}
	s.EventID, err = parseID(p.Get(keyEventID))
	if err != nil {
		return nil, fmt.Errorf("loading session event id: %w", err)
	}
	return s, nil
}

// Save writes the session through to the prefs store synchronously.
func (s *Session) Save(p *prefs.Store) error {
	if err := p.Set(keyCharacterID, strconv.FormatInt(s.CharacterID, 10)); err != nil {
		return fmt.Errorf("saving session character id: %w", err)
	}
	if err := p.Set(keyCharacterName, s.CharacterName); err != nil {
		return fmt.Errorf("saving session character name: %w", err)
	}
	if err := p.SetBool(keyCharacterAlive, s.CharacterAlive); err != nil {
		return fmt.Errorf("saving session character alive: %w", err)
	}
	if err := p.Set(keyEventID, strconv.FormatInt(s.EventID, 10)); err != nil {
		return fmt.Errorf("saving session event id: %w", err)
	}
	return nil
}

// SetCharacter records the current character. Selecting a different
// character clears the current event.
func (s *Session) SetCharacter(id int64, name, status string) {
	if s.CharacterID != id {
		s.EventID = 0
	}
	s.CharacterID = id
	s.CharacterName = name
	s.CharacterAlive = status == types.StatusAlive
}

// ClearCharacter drops the current character and, with it, the current
// event.
func (s *Session) ClearCharacter() {
	s.CharacterID = 0
	s.CharacterName = ""
	s.CharacterAlive = false
	s.EventID = 0
}

// SetEvent records the current event.
func (s *Session) SetEvent(id int64) {
	s.EventID = id
}

// ClearEvent drops the current event.
func (s *Session) ClearEvent() {
	s.EventID = 0
}

// HasCharacter reports whether a character is selected.
func (s *Session) HasCharacter() bool {
	return s.CharacterID > 0
}

// HasEvent reports whether an event is selected.
func (s *Session) HasEvent() bool {
	return s.EventID > 0
}

// parseID parses a persisted id. "" and "0" both mean "none".
func parseID(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
