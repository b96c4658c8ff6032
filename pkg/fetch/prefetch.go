package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/tabel/pkg/model"
)

// fetchAllConcurrency caps parallel page fetches during a full-dataset pull.
const fetchAllConcurrency = 4

// FetchAll pulls every page of a provider concurrently and returns the rows
// in dataset order. Used by exports, which need the whole dataset rather
// than the model's current page. The provider is hit from multiple
// goroutines; the model is never touched.
func FetchAll(ctx context.Context, p Provider, pageLength int) ([]*model.Row, error) {
	if pageLength <= 0 {
		pageLength = 100
	}
	total, err := p.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}
	pages := (total + pageLength - 1) / pageLength
	chunks := make([][]*model.Row, pages)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchAllConcurrency)
	for i := 0; i < pages; i++ {
		g.Go(func() error {
			rows, err := p.Page(ctx, i+1, pageLength)
			if err != nil {
				return err
			}
			chunks[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*model.Row, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out, nil
}
