package main

import (
	"fmt"

	"github.com/spf13/cobra"

	// Registers the built-in policies.
	_ "github.com/vovakirdan/drone-dodger/internal/games/dodger"
	"github.com/vovakirdan/drone-dodger/internal/registry"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List target selection policies",
	Long:  `Shows the policies the autopilot can use to pick a free band.`,
	Run:   runPilots,
}

func runPilots(_ *cobra.Command, _ []string) {
	policies := registry.List()

	if len(policies) == 0 {
		fmt.Println("No policies available.")
		return
	}

	fmt.Println("Available policies:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, p := range policies {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, p := range policies {
		fmt.Printf("  %-*s  %s\n", maxNameLen, p.Name, p.Description)
	}

	fmt.Println()
	fmt.Println("Select one with 'dodger watch --policy <name>' or planner.policy in the config.")
}
