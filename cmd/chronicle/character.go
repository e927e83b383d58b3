// Character commands: add, list, show, select, update, delete.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dukaforge/chronicle/internal/tracker"
	"github.com/dukaforge/chronicle/pkg/types"
)

var (
	characterName    string
	characterRace    string
	characterClass   string
	characterDetails string
	characterDead    bool
)

var characterCmd = &cobra.Command{
	Use:     "character",
	Aliases: []string{"char"},
	Short:   "Manage characters",
}

var characterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a character and select it",
	Long: `Add creates a character and makes it the current subject of following
event commands.

Example:
  chronicle character add --name Keth --race Dwarf --class Fighter
  chronicle character add --name Zana --race 2 --class Wizard --dead`,
	RunE: runCharacterAdd,
}

var characterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List characters with race and class names",
	RunE:  runCharacterList,
}

var characterShowCmd = &cobra.Command{
	Use:   "show [ID]",
	Short: "Show a character with its total experience and event log",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCharacterShow,
}

var characterSelectCmd = &cobra.Command{
	Use:   "select ID",
	Short: "Make a character the current subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacterSelect,
}

var characterUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Overwrite a character's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacterUpdate,
}

var characterDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a character and its whole event history",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacterDelete,
}

func init() {
	for _, c := range []*cobra.Command{characterAddCmd, characterUpdateCmd} {
		c.Flags().StringVar(&characterName, "name", "", "character name (required)")
		c.Flags().StringVar(&characterRace, "race", "", "race name or id (required)")
		c.Flags().StringVar(&characterClass, "class", "", "class name or id (required)")
		c.Flags().StringVar(&characterDetails, "details", "", "free-form notes")
		c.Flags().BoolVar(&characterDead, "dead", false, "mark the character dead")
		_ = c.MarkFlagRequired("name")
		_ = c.MarkFlagRequired("race")
		_ = c.MarkFlagRequired("class")
	}

	characterCmd.AddCommand(characterAddCmd)
	characterCmd.AddCommand(characterListCmd)
	characterCmd.AddCommand(characterShowCmd)
	characterCmd.AddCommand(characterSelectCmd)
	characterCmd.AddCommand(characterUpdateCmd)
	characterCmd.AddCommand(characterDeleteCmd)
}

// characterFromFlags resolves the race/class flags against the reference
// lists and assembles the record.
func characterFromFlags(tr *tracker.Tracker) (*types.Character, error) {
	races, err := tr.Store().Races()
	if err != nil {
		return nil, fmt.Errorf("load races: %w", err)
	}
	classes, err := tr.Store().Classes()
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}

	raceID, err := resolveEntry(races, characterRace, "race")
	if err != nil {
		return nil, err
	}
	classID, err := resolveEntry(classes, characterClass, "class")
	if err != nil {
		return nil, err
	}

	status := types.StatusAlive
	if characterDead {
		status = types.StatusDead
	}
	return &types.Character{
		RaceID:  raceID,
		ClassID: classID,
		Name:    characterName,
		Status:  status,
		Details: characterDetails,
	}, nil
}

func runCharacterAdd(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	c, err := characterFromFlags(tr)
	if err != nil {
		return err
	}

	id, err := tr.AddCharacter(c)
	if err != nil {
		return fmt.Errorf("add character: %w", err)
	}
	fmt.Printf("Created character %q (id %d)\n", c.Name, id)
	return nil
}

func runCharacterList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	characters, err := tr.Store().Characters()
	if err != nil {
		return fmt.Errorf("list characters: %w", err)
	}
	if flagJSON {
		return printJSON(characters)
	}
	for _, c := range characters {
		fmt.Printf("%4d  %-20s %-12s %-12s %s\n", c.CharacterID, c.Name, c.RaceName, c.ClassName, c.Status)
	}
	return nil
}

func runCharacterShow(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	id := tr.Session().CharacterID
	if len(args) == 1 {
		id, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid character id %q", args[0])
		}
	}
	if id == 0 {
		return fmt.Errorf("no character selected; pass an id or run: chronicle character select ID")
	}

	profile, err := tr.Store().Character(id)
	if err != nil {
		return fmt.Errorf("show character: %w", err)
	}
	events, err := tr.Store().CharacterEvents(id)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	if flagJSON {
		return printJSON(struct {
			Character *types.CharacterProfile
			Events    []types.Event
		}{profile, events})
	}

	fmt.Printf("%s: %s %s, %s, %d xp\n", profile.Name, profile.RaceName, profile.ClassName, profile.Status, profile.Experience)
	if profile.Details != "" {
		fmt.Printf("  %s\n", profile.Details)
	}
	for _, ev := range events {
		xp := "-"
		if ev.Experience != nil {
			xp = strconv.FormatInt(*ev.Experience, 10)
		}
		fmt.Printf("  %s  #%d %-10s xp=%-6s %s\n", ev.Date, ev.EventID, ev.TypeName, xp, ev.Description)
		for _, d := range ev.Details {
			if d.CreatureCount != nil {
				fmt.Printf("      - %s x%d\n", d.Name, *d.CreatureCount)
			} else {
				fmt.Printf("      - %s\n", d.Name)
			}
		}
	}
	return nil
}

func runCharacterSelect(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid character id %q", args[0])
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	profile, err := tr.SelectCharacter(id)
	if err != nil {
		return fmt.Errorf("select character: %w", err)
	}
	fmt.Printf("Selected %q (%s)\n", profile.Name, profile.Status)
	return nil
}

func runCharacterUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid character id %q", args[0])
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	c, err := characterFromFlags(tr)
	if err != nil {
		return err
	}
	c.CharacterID = id

	if err := tr.UpdateCharacter(c); err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	fmt.Printf("Updated character %d\n", id)
	return nil
}

func runCharacterDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid character id %q", args[0])
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.DeleteCharacter(id); err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	fmt.Printf("Deleted character %d and its event history\n", id)
	return nil
}
