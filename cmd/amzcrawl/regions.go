package main

import (
	"fmt"
)

// Run executes the regions command.
func (c *RegionsCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Supported Amazon regions:")
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "%-6s %-20s %-10s\n", "Code", "Domain", "Currency")
	fmt.Fprintf(deps.Stdout, "%-6s %-20s %-10s\n", "------", "--------------------", "----------")

	for _, r := range deps.Locales.All() {
		fmt.Fprintf(deps.Stdout, "%-6s %-20s %-10s\n", r.Code, r.Domain, r.Currency)
	}
	return nil
}
