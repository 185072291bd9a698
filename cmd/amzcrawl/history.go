package main

import (
	"fmt"

	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/format"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	asin, err := amzcrawl.ValidateASIN(c.ASIN)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}

	filter := amzcrawl.SnapshotFilter{ASIN: &asin, Limit: c.Limit}
	if !c.All {
		filter.Region = &deps.Region.Code
	}

	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}

	if deps.Config.Format == string(amzcrawl.FormatJSON) {
		if snaps == nil {
			snaps = []*amzcrawl.Snapshot{}
		}
		return printJSON(deps, snaps)
	}
	if len(snaps) == 0 {
		fmt.Fprintf(deps.Stdout, "No price history for %s. Use --record with search or product to collect it.\n", asin)
		return nil
	}
	fmt.Fprintln(deps.Stdout, format.History(snaps))
	return nil
}
