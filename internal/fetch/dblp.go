package fetch

import (
	"context"
	"fmt"

	"github.com/aluex/ck/internal/bib"
)

// FetchDBLP retrieves the BibTeX record DBLP exports for a key. DBLP appends
// the cross-referenced proceedings entry after the paper's own, so only the
// first entry is kept.
func (c *Client) FetchDBLP(ctx context.Context, key string) (*Result, error) {
	query := fmt.Sprintf("%s/%s.bib", c.dblpURL, key)

	resp, err := c.get(ctx, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	rec, err := bib.ParseFirst(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	// The crossref field points at the dropped proceedings entry and would
	// dangle in a standalone file.
	rec.DeleteField("crossref")

	return &Result{Record: rec}, nil
}
