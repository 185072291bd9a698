package main

import (
	"fmt"

	"github.com/fwojciec/amzcrawl"
)

// recordProducts saves a snapshot of each product when recording is on.
// Unchanged listings are skipped by the store.
func recordProducts(deps *Dependencies, products ...*amzcrawl.Product) error {
	if !deps.Record || deps.Snapshots == nil {
		return nil
	}

	var created int
	for _, p := range products {
		ok, err := deps.Snapshots.CreateSnapshot(deps.Ctx, amzcrawl.NewSnapshot(p, deps.Region.Code))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
			return err
		}
		if ok {
			created++
		}
	}

	deps.Logger.Info("recorded snapshots", "products", len(products), "created", created)
	return nil
}
