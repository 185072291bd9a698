package main

import (
	"fmt"

	"github.com/fwojciec/amzcrawl"
	"github.com/fwojciec/amzcrawl/format"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	comparison, err := deps.Tropical.ComparePrices(deps.Ctx, c.ASIN)
	if amzcrawl.ErrorCode(err) == amzcrawl.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: No price data found for ASIN %s on TropicalPrice\n", c.ASIN)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}

	deps.Logger.Info("compared prices", "asin", comparison.ASIN, "stores", comparison.TotalStores)

	if deps.Config.Format == string(amzcrawl.FormatJSON) {
		return printJSON(deps, comparison)
	}
	fmt.Fprintln(deps.Stdout, format.Comparison(comparison))
	return nil
}

// Run executes the tropical command.
func (c *TropicalCmd) Run(deps *Dependencies) error {
	products, err := deps.Tropical.SearchTropical(deps.Ctx, c.Query, c.Max)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}

	deps.Logger.Info("searched price comparison site", "query", c.Query, "products", len(products))

	if deps.Config.Format == string(amzcrawl.FormatJSON) {
		if products == nil {
			products = []*amzcrawl.TropicalProduct{}
		}
		return printJSON(deps, products)
	}
	fmt.Fprintln(deps.Stdout, format.TropicalProducts(products))
	return nil
}

func printJSON(deps *Dependencies, v any) error {
	out, err := format.JSON(v)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
