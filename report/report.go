// Package report renders the state of a page table engine in a
// human-readable form. It only consumes the engine's read-only queries.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/vm"
)

// Summary writes the algorithm in use, the cumulative fault count, and the
// page table contents.
func Summary(w io.Writer, engine *vm.Engine) error {
	_, err := fmt.Fprintf(w, "==== Page Table ====\nMode: %s\nPage Faults: %d\n",
		engine.Algorithm(), engine.FaultCount())
	if err != nil {
		return err
	}

	return Table(w, engine)
}

// Table writes one row per page with its last frame number and valid bit.
// Pages that were never loaded show the empty-frame sentinel.
func Table(w io.Writer, engine *vm.Engine) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "page\tframe\tvalid")

	table := engine.PageTable()
	for n := 0; n < table.PageCount(); n++ {
		page := table.Page(n)

		valid := 0
		if page.Valid {
			valid = 1
		}

		fmt.Fprintf(tw, "%d\t%d\t%d\n", page.Number, page.Frame, valid)
	}

	return tw.Flush()
}
