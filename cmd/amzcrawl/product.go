package main

import (
	"fmt"

	"github.com/fwojciec/amzcrawl"
)

// Run executes the product command. A single ASIN prints the detail view;
// several ASINs are looked up as a batch and printed as a list, skipping
// those that fail.
func (c *ProductCmd) Run(deps *Dependencies) error {
	if len(c.ASINs) == 1 {
		return c.runOne(deps, c.ASINs[0])
	}

	results, err := deps.Products.FindProducts(deps.Ctx, deps.Region, c.ASINs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}

	var products []*amzcrawl.Product
	for _, r := range results {
		switch {
		case amzcrawl.ErrorCode(r.Err) == amzcrawl.EINVALID:
			fmt.Fprintf(deps.Stderr, "Skipping invalid ASIN: %s\n", r.ASIN)
		case r.Err != nil:
			fmt.Fprintf(deps.Stderr, "Failed to look up %s: %s\n", r.ASIN, amzcrawl.ErrorMessage(r.Err))
		default:
			products = append(products, r.Product)
		}
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

func (c *ProductCmd) runOne(deps *Dependencies, asin string) error {
	p, err := deps.Products.FindProduct(deps.Ctx, deps.Region, asin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}

	if err := recordProducts(deps, p); err != nil {
		return err
	}

	out, err := deps.Formatter.FormatProduct(p)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", amzcrawl.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
