package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/amzcrawl"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	filters := amzcrawl.NewFilterChain(deps.Config.FilterOptions())
	if filters.Len() > 0 {
		deps.Logger.Debug("active filters", "filters", strings.Join(filters.Descriptions(), ", "))
	}

	products, err := deps.Search.Search(deps.Ctx, deps.Region, c.Query, amzcrawl.SearchOptions{
		MaxResults: deps.Config.MaxResults,
		Filters:    filters,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}

	if err := recordProducts(deps, products...); err != nil {
		return err
	}

	out, err := deps.Formatter.FormatProducts(products)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
