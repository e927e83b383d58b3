// Shared helpers for chronicle CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dukaforge/chronicle/internal/prefs"
	"github.com/dukaforge/chronicle/internal/sqlite"
	"github.com/dukaforge/chronicle/internal/tracker"
	"github.com/dukaforge/chronicle/pkg/types"
)

// openTracker resolves the data directory and opens the full stack: prefs,
// store, and tracker. The returned cleanup must be deferred.
func openTracker() (*tracker.Tracker, func(), error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	pf, err := prefs.Open(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open prefs: %w", err)
	}

	store, err := sqlite.Open(types.Config{DataDir: dataDir}, pf, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	tr, err := tracker.New(store, pf, logger)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load session: %w", err)
	}

	cleanup := func() {
		store.Close()
		_ = logger.Sync()
	}
	return tr, cleanup, nil
}

// resolveEntry matches arg against a selection list by numeric id or by
// case-insensitive name.
func resolveEntry(entries []types.SelectEntry, arg, kind string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		for _, e := range entries {
			if e.ID == id {
				return id, nil
			}
		}
		return 0, fmt.Errorf("no %s with id %d", kind, id)
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name, arg) {
			return e.ID, nil
		}
	}
	return 0, fmt.Errorf("no %s named %q", kind, arg)
}

// eventTypeNames maps CLI spellings to event type ids.
var eventTypeNames = map[string]int64{
	"combat":     types.EventTypeCombat,
	"noncombat":  types.EventTypeNonCombat,
	"non-combat": types.EventTypeNonCombat,
	"resurrect":  types.EventTypeResurrect,
	"death":      types.EventTypeDeath,
}

// parseEventType accepts an event type by name or by literal id.
func parseEventType(arg string) (int64, error) {
	if id, ok := eventTypeNames[strings.ToLower(arg)]; ok {
		return id, nil
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < types.EventTypeCombat || id > types.EventTypeDeath {
		return 0, fmt.Errorf("unknown event type %q (combat, noncombat, resurrect, death)", arg)
	}
	return id, nil
}

// parseDetailSpec parses a --detail value of the form "name" or
// "name:creatures".
func parseDetailSpec(spec string) (types.EventDetail, error) {
	name, countStr, found := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return types.EventDetail{}, fmt.Errorf("detail %q has no name", spec)
	}
	d := types.EventDetail{Name: name}
	if found {
		n, err := strconv.ParseInt(strings.TrimSpace(countStr), 10, 64)
		if err != nil {
			return types.EventDetail{}, fmt.Errorf("detail %q has a bad creature count: %w", spec, err)
		}
		d.CreatureCount = &n
	}
	return d, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printEntries prints a selection list as JSON or a simple table.
func printEntries(entries []types.SelectEntry) error {
	if flagJSON {
		return printJSON(entries)
	}
	for _, e := range entries {
		fmt.Printf("%4d  %s\n", e.ID, e.Name)
	}
	return nil
}
