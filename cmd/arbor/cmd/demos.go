package cmd

import (
	"fmt"

	"github.com/go-drift/arbor/showcase"
)

func init() {
	RegisterCommand(&Command{
		Name:  "demos",
		Short: "List the showcase applications",
		Long:  `Demos lists the applications render and layout accept for --app.`,
		Usage: "arbor demos",
		Run:   runDemos,
	})
}

func runDemos(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("demos takes no arguments")
	}
	for _, d := range showcase.Demos() {
		fmt.Fprintf(stdout, "  %-12s %-14s %gx%g  %s\n", d.Name, d.Title, d.Size.Width, d.Size.Height, d.Subtitle)
	}
	return nil
}
