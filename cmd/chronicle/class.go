// Class commands: add, list, delete.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Manage the character class reference list",
}

var classAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a character class",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassAdd,
}

var classListCmd = &cobra.Command{
	Use:   "list",
	Short: "List classes ordered by name",
	RunE:  runClassList,
}

var classDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a class unless a character references it",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassDelete,
}

func init() {
	classCmd.AddCommand(classAddCmd)
	classCmd.AddCommand(classListCmd)
	classCmd.AddCommand(classDeleteCmd)
}

func runClassAdd(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	id, inserted, err := tr.AddClass(args[0])
	if err != nil {
		return fmt.Errorf("add class: %w", err)
	}
	if !inserted {
		fmt.Printf("Class %q already exists\n", args[0])
		return nil
	}
	fmt.Printf("Added class %q (id %d)\n", args[0], id)
	return nil
}

func runClassList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	classes, err := tr.Store().Classes()
	if err != nil {
		return fmt.Errorf("list classes: %w", err)
	}
	return printEntries(classes)
}

func runClassDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid class id %q", args[0])
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	deleted, err := tr.DeleteClass(id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if !deleted {
		fmt.Printf("Class %d not deleted: a character references it (or it does not exist)\n", id)
		return nil
	}
	fmt.Printf("Deleted class %d\n", id)
	return nil
}
