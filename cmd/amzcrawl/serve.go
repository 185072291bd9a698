package main

import (
	"fmt"

	amzhttp "github.com/fwojciec/amzcrawl/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &amzhttp.Server{
		Locales:   deps.Locales,
		Search:    deps.Search,
		Products:  deps.Products,
		Snapshots: deps.Snapshots,
		Logger:    deps.Logger,
	}
	if deps.Metrics != nil {
		srv.Metrics = deps.Metrics.Handler()
	}
	fmt.Fprintf(deps.Stderr, "Serving the API on http://%s\n", c.Addr)
	return srv.ListenAndServe(deps.Ctx, c.Addr)
}
