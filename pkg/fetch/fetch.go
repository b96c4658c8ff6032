// Package fetch is the paging collaborator for a tabel TableModel. The model
// never fetches its own data; a Pager asks a Provider for pages and rewrites
// the model's cursor fields around each fetch. All model mutation must happen
// on the UI goroutine: asynchronous callers run the Provider off-thread and
// hand the PageResult back to Apply on the UI goroutine.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// ErrFetchFailure wraps provider errors. The model itself carries no retry
// logic; a failed fetch just stops the loading state and leaves the current
// page in place.
var ErrFetchFailure = errors.New("fetch failure")

// Provider serves pages of rows from some backing dataset. Page is 1-based.
// Implementations must be safe for use from a non-UI goroutine; they return
// data, they never touch the model.
type Provider interface {
	// Count returns the total number of rows in the dataset.
	Count(ctx context.Context) (int, error)

	// Page returns the rows of the given 1-based page. A short or empty
	// result means the dataset ends inside (or before) this page.
	Page(ctx context.Context, page, length int) ([]*model.Row, error)
}

// NamedProvider is a Provider that also knows its column labels.
type NamedProvider interface {
	Provider
	Columns() []string
}

// PageResult is the outcome of one fetch, tagged with the request sequence
// number it was issued under. Stale results (an Apply after a newer Begin)
// are dropped; the model itself has no request identity and would happily
// accept them otherwise.
type PageResult struct {
	Seq   int
	Page  int
	Rows  []*model.Row
	Total int
	Err   error
}

// Pager drives a TableModel's pagination cursor from a Provider. It is not
// goroutine-safe; Begin and Apply belong on the UI goroutine, mirroring the
// model's own single-goroutine discipline.
type Pager struct {
	Model    *model.TableModel
	Provider Provider

	seq int
}

// NewPager wires a pager to a model and sets the model's page length.
func NewPager(m *model.TableModel, p Provider, pageLength int) *Pager {
	if pageLength <= 0 {
		pageLength = 25
	}
	m.PageLength = pageLength
	return &Pager{Model: m, Provider: p}
}

// PageRequest identifies one fetch: the page wanted, the page length at the
// time of the request and the sequence number a subsequent Apply must
// present. Begin builds it on the UI goroutine; Fetch reads only the request,
// never the model.
type PageRequest struct {
	Seq    int
	Page   int
	Length int
}

// Begin marks the model loading and returns the request for a subsequent
// Fetch. Call on the UI goroutine before starting a fetch.
func (p *Pager) Begin(page int) PageRequest {
	p.seq++
	p.Model.Loading = true
	p.Model.NotifyPageChanged()
	return PageRequest{Seq: p.seq, Page: page, Length: p.Model.PageLength}
}

// Fetch runs the provider for one page. Safe to call from any goroutine; it
// does not touch the model.
func (p *Pager) Fetch(ctx context.Context, req PageRequest) PageResult {
	total, err := p.Provider.Count(ctx)
	if err != nil {
		return PageResult{Seq: req.Seq, Page: req.Page, Err: fmt.Errorf("%w: count: %v", ErrFetchFailure, err)}
	}
	rows, err := p.Provider.Page(ctx, req.Page, req.Length)
	if err != nil {
		return PageResult{Seq: req.Seq, Page: req.Page, Err: fmt.Errorf("%w: page %d: %v", ErrFetchFailure, req.Page, err)}
	}
	return PageResult{Seq: req.Seq, Page: req.Page, Rows: rows, Total: total}
}

// Apply folds a fetch result into the model. Results carrying a sequence
// number older than the latest Begin are dropped (the caller superseded
// them). On failure the cursor stops loading and keeps the current page; on
// success data is replaced wholesale, which resets selection and expansion
// per the model's reset-on-replace policy. Returns the result error, nil for
// dropped results.
func (p *Pager) Apply(res PageResult) error {
	if res.Seq != p.seq {
		return nil
	}
	m := p.Model
	m.Loading = false
	if res.Err != nil {
		m.NotifyPageChanged()
		return res.Err
	}
	m.TotalDataLength = res.Total
	m.CurrentPage = res.Page
	m.SetData(res.Rows)
	m.End = res.Page >= m.PageCount() || len(res.Rows) < m.PageLength
	m.NotifyPageChanged()
	return nil
}

// Load fetches and applies one page synchronously. Convenience for tests,
// exports and startup; interactive consumers should Begin/Fetch/Apply so the
// provider call stays off the UI goroutine.
func (p *Pager) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	return p.Apply(p.Fetch(ctx, p.Begin(page)))
}

// Next loads the following page; no-op at the end of the dataset.
func (p *Pager) Next(ctx context.Context) error {
	if p.Model.End && p.Model.CurrentPage >= p.Model.PageCount() {
		return nil
	}
	return p.Load(ctx, p.Model.CurrentPage+1)
}

// Prev loads the preceding page; no-op on the first page.
func (p *Pager) Prev(ctx context.Context) error {
	if p.Model.CurrentPage <= 1 {
		return nil
	}
	return p.Load(ctx, p.Model.CurrentPage-1)
}

// Goto loads an explicit 1-based page, clamped to the known page range.
func (p *Pager) Goto(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	if n := p.Model.PageCount(); n > 0 && page > n {
		page = n
	}
	return p.Load(ctx, page)
}
