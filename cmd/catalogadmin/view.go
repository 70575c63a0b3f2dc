package main

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/suteetoe/catalogadmin/internal/engine"
	"github.com/suteetoe/catalogadmin/internal/refdata"
)

// view renders view model snapshots as a table. While a fetch is in flight it
// shows a loading line instead of the previous listing.
type view struct {
	mu    sync.Mutex
	out   io.Writer
	cache *refdata.Cache
}

func newView(out io.Writer, cache *refdata.Cache) *view {
	return &view{out: out, cache: cache}
}

func (v *view) Render(vm engine.ViewModel) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if vm.Loading {
		fmt.Fprintln(v.out, "loading...")
		return
	}

	if len(vm.Products) == 0 {
		fmt.Fprintln(v.out, "no products found")
		return
	}

	w := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tCATEGORY\tACTIVE\tCREATED")
	for _, p := range vm.Products {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%s\t%t\t%s\n",
			p.ID, p.Name, p.Price, p.Stock,
			v.cache.Label(p.CategoryID), p.IsActive,
			p.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()

	if vm.Pagination.Total > 0 {
		fmt.Fprintf(v.out, "page %d/%d, %d products total\n",
			vm.Pagination.Page, vm.Pagination.TotalPages, vm.Pagination.Total)
	}
}
