package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/traypos/internal/positioner"
)

var taskbarOpts struct {
	anchor string
	all    bool
}

var taskbarCmd = &cobra.Command{
	Use:   "taskbar",
	Short: "Report which screen edge the taskbar is on",
	Long: `Report the taskbar edge (top, left, bottom or right) of the display
nearest to the anchor. A display without any taskbar reports bottom.

With --all, every display is listed instead.`,
	RunE: runTaskbar,
}

func init() {
	rootCmd.AddCommand(taskbarCmd)

	taskbarCmd.Flags().StringVarP(&taskbarOpts.anchor, "anchor", "a", "0,0,0,0",
		"Point of interest as x,y,w,h (only the origin is used)")
	taskbarCmd.Flags().BoolVar(&taskbarOpts.all, "all", false,
		"Report the taskbar edge of every display")
}

func runTaskbar(cmd *cobra.Command, args []string) error {
	c := getConfig()

	provider, err := newSource(c)
	if err != nil {
		return err
	}

	if taskbarOpts.all {
		displays, err := provider.Displays()
		if err != nil {
			return err
		}
		for _, d := range displays {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", d.ID, positioner.TaskbarEdge(d))
		}
		return nil
	}

	anchor, err := parseAnchor(taskbarOpts.anchor, "")
	if err != nil {
		return err
	}

	edge, err := newPositioner(c, provider).TaskbarPosition(anchor)
	if err != nil {
		return fmt.Errorf("failed to determine taskbar position: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), edge)
	return nil
}
