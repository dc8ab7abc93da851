package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/traypos/internal/core"
	"github.com/jmylchreest/traypos/internal/geometry"
)

var displaysOpts struct {
	format    string
	sortBy    string
	sortOrder string
}

var displaysCmd = &cobra.Command{
	Use:   "displays [id|name]",
	Short: "List displays with their bounds and work areas",
	Long: `List the displays the configured provider reports, with their bounds,
work areas and inferred taskbar edge.

With an argument, only the display with that ID or connector name is shown.

The yaml output can be saved and used as a layout file for the static
provider:
  traypos displays -f yaml > ~/.config/traypos/displays.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDisplays,
}

func init() {
	rootCmd.AddCommand(displaysCmd)

	displaysCmd.Flags().StringVarP(&displaysOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	displaysCmd.Flags().StringVar(&displaysOpts.sortBy, "sort", "id",
		"Sort by field (id, name, position, area)")
	displaysCmd.Flags().StringVar(&displaysOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")
}

func runDisplays(cmd *cobra.Command, args []string) error {
	formatter, err := newOutputFormatter(displaysOpts.format, "", false)
	if err != nil {
		return err
	}

	field, err := core.ParseSortField(displaysOpts.sortBy)
	if err != nil {
		return err
	}
	order, err := core.ParseSortOrder(displaysOpts.sortOrder)
	if err != nil {
		return err
	}

	provider, err := newSource(getConfig())
	if err != nil {
		return err
	}

	displays, err := provider.Displays()
	if err != nil {
		return err
	}
	logger.Debug("listing displays", "count", len(displays))

	if len(args) > 0 {
		d := core.Lookup(displays, args[0])
		if d == nil {
			return fmt.Errorf("no display matches %q", args[0])
		}
		displays = []geometry.Display{*d}
	}

	core.Sort(displays, core.SortOptions{Field: field, Order: order})

	return formatter.FormatDisplays(os.Stdout, displays)
}
