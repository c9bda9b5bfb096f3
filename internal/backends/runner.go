package backends

import (
	"context"
	"fmt"
	"io"
	"strings"

	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
)

// Runner executes every configured backend in sequence. One backend failing
// is reported and does not stop the others; each backend's writes are atomic
// on their own.
type Runner struct {
	backends  []Backend
	priceRepo portsrepo.PriceRepositoryFacade
	out       io.Writer
}

// NewRunner builds a runner over the given backends, reporting progress to out.
func NewRunner(priceRepo portsrepo.PriceRepositoryFacade, out io.Writer, backends ...Backend) *Runner {
	return &Runner{
		backends:  backends,
		priceRepo: priceRepo,
		out:       out,
	}
}

// Run updates prices through every backend and returns the number of
// backends that failed.
func (r *Runner) Run(ctx context.Context, period string) int {
	fmt.Fprintf(r.out, "\nUpdating prices database ...\n")

	maxNameLen := 0
	for _, b := range r.backends {
		if len(b.Name()) > maxNameLen {
			maxNameLen = len(b.Name())
		}
	}
	totalWidth := maxNameLen + 3

	failed := 0
	for _, b := range r.backends {
		dots := strings.Repeat(".", totalWidth-len(b.Name()))
		fmt.Fprintf(r.out, "  - %s %s", b.Name(), dots)

		if err := UpdatePrices(ctx, b, r.priceRepo, period); err != nil {
			failed++
			fmt.Fprintf(r.out, " failed: %v\n", err)
			continue
		}
		fmt.Fprintf(r.out, " done\n")
	}
	return failed
}
