// Event commands: add, list, show, update, delete, titles.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dukaforge/chronicle/internal/tracker"
	"github.com/dukaforge/chronicle/pkg/types"
)

var (
	eventType        string
	eventDate        string
	eventXP          int64
	eventParty       int64
	eventDescription string
	eventDetailSpecs []string
	eventCharacter   int64
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage the event log",
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an event for the current (or given) character",
	Long: `Add logs an event with one or more details. Death and resurrect events
update the character's living status; combat and non-combat events can
carry experience, split across --party characters.

Example:
  chronicle event add --type combat --xp 300 --party 2 \
      --detail "Orc raiders:6" --detail "Orc chieftain:1"
  chronicle event add --type death --detail "Dragon breath"`,
	RunE: runEventAdd,
}

var eventListCmd = &cobra.Command{
	Use:   "list [CHARACTER_ID]",
	Short: "List a character's events in date order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEventList,
}

var eventShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one event with its details",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventShow,
}

var eventUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Overwrite an event and replace its details",
	Long: `Update overwrites the event row and replaces every detail with the
supplied --detail values. At least one detail is required. Updating a
death or resurrect event must not change its type; status is never
recomputed here.`,
	Args: cobra.ExactArgs(1),
	RunE: runEventUpdate,
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an event and recompute the character's living status",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventDelete,
}

var eventTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the event types",
	RunE:  runEventTypes,
}

var eventTitlesCmd = &cobra.Command{
	Use:   "titles TYPE...",
	Short: "List the distinct detail names used by events of the given types",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEventTitles,
}

func init() {
	for _, c := range []*cobra.Command{eventAddCmd, eventUpdateCmd} {
		c.Flags().StringVar(&eventType, "type", "", "event type: combat, noncombat, resurrect, death (required)")
		c.Flags().StringVar(&eventDate, "date", "", "event date YYYY-MM-DD (default: today)")
		c.Flags().Int64Var(&eventXP, "xp", -1, "experience granted (omit for none)")
		c.Flags().Int64Var(&eventParty, "party", 1, "number of characters splitting the experience")
		c.Flags().StringVar(&eventDescription, "desc", "", "event description")
		c.Flags().StringArrayVar(&eventDetailSpecs, "detail", nil, `detail "name" or "name:creatures" (repeatable, required)`)
		_ = c.MarkFlagRequired("type")
		_ = c.MarkFlagRequired("detail")
	}
	eventAddCmd.Flags().Int64Var(&eventCharacter, "character", 0, "character id (default: current selection)")

	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventShowCmd)
	eventCmd.AddCommand(eventUpdateCmd)
	eventCmd.AddCommand(eventDeleteCmd)
	eventCmd.AddCommand(eventTypesCmd)
	eventCmd.AddCommand(eventTitlesCmd)
}

// eventFromFlags assembles the event record and details from the flags.
func eventFromFlags() (*types.Event, []types.EventDetail, error) {
	typeID, err := parseEventType(eventType)
	if err != nil {
		return nil, nil, err
	}

	ev := &types.Event{
		EventTypeID:    typeID,
		CharacterCount: eventParty,
		Date:           eventDate,
		Description:    eventDescription,
	}
	// Resurrect and death events never carry experience.
	if eventXP >= 0 {
		if _, lifecycle := types.StatusForEventType(typeID); lifecycle {
			return nil, nil, fmt.Errorf("%s events cannot grant experience", eventType)
		}
		xp := eventXP
		ev.Experience = &xp
	}

	details := make([]types.EventDetail, 0, len(eventDetailSpecs))
	for _, spec := range eventDetailSpecs {
		d, err := parseDetailSpec(spec)
		if err != nil {
			return nil, nil, err
		}
		details = append(details, d)
	}
	return ev, details, nil
}

// eventSubject returns the character the command acts on: the --character
// flag when given, the session selection otherwise.
func eventSubject(tr *tracker.Tracker) (int64, error) {
	if eventCharacter > 0 {
		return eventCharacter, nil
	}
	if tr.Session().HasCharacter() {
		return tr.Session().CharacterID, nil
	}
	return 0, fmt.Errorf("no character selected; pass --character or run: chronicle character select ID")
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	ev, details, err := eventFromFlags()
	if err != nil {
		return err
	}
	charID, err := eventSubject(tr)
	if err != nil {
		return err
	}

	id, err := tr.AddEvent(ev, details, charID)
	if err != nil {
		return fmt.Errorf("add event: %w", err)
	}

	fmt.Printf("Logged event %d on %s\n", id, ev.Date)
	if status, ok := types.StatusForEventType(ev.EventTypeID); ok {
		fmt.Printf("Character %d is now %s\n", charID, status)
	}
	return nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	charID := tr.Session().CharacterID
	if len(args) == 1 {
		charID, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid character id %q", args[0])
		}
	}
	if charID == 0 {
		return fmt.Errorf("no character selected; pass an id or run: chronicle character select ID")
	}

	events, err := tr.Store().CharacterEvents(charID)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	if flagJSON {
		return printJSON(events)
	}
	for _, ev := range events {
		printEvent(&ev)
	}
	return nil
}

func runEventShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	ev, err := tr.Store().Event(id)
	if err != nil {
		return fmt.Errorf("show event: %w", err)
	}
	if flagJSON {
		return printJSON(ev)
	}
	printEvent(ev)
	return nil
}

func runEventUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	ev, details, err := eventFromFlags()
	if err != nil {
		return err
	}
	ev.EventID = id

	if err := tr.UpdateEvent(ev, details); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	fmt.Printf("Updated event %d\n", id)
	return nil
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	charID, err := eventSubject(tr)
	if err != nil {
		return err
	}

	status, err := tr.DeleteEvent(id, charID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	fmt.Printf("Deleted event %d; character %d is %s\n", id, charID, status)
	return nil
}

func runEventTypes(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := tr.Store().EventTypes()
	if err != nil {
		return fmt.Errorf("list event types: %w", err)
	}
	return printEntries(entries)
}

func runEventTitles(cmd *cobra.Command, args []string) error {
	typeIDs := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseEventType(arg)
		if err != nil {
			return err
		}
		typeIDs = append(typeIDs, id)
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	titles, err := tr.Store().EventTitles(typeIDs)
	if err != nil {
		return fmt.Errorf("list titles: %w", err)
	}
	if flagJSON {
		return printJSON(titles)
	}
	for _, typeID := range typeIDs {
		fmt.Printf("type %d:\n", typeID)
		for _, name := range titles[typeID] {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

// printEvent writes one event with its details to stdout.
func printEvent(ev *types.Event) {
	xp := "-"
	if ev.Experience != nil {
		xp = strconv.FormatInt(*ev.Experience, 10)
	}
	fmt.Printf("%s  #%d %-10s party=%d xp=%-6s %s\n",
		ev.Date, ev.EventID, ev.TypeName, ev.CharacterCount, xp, ev.Description)
	for _, d := range ev.Details {
		if d.CreatureCount != nil {
			fmt.Printf("    - %s x%d\n", d.Name, *d.CreatureCount)
		} else {
			fmt.Printf("    - %s\n", d.Name)
		}
	}
}
