package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aluex/ck/internal/bib"
)

// FetchArxiv retrieves metadata for an arXiv ID from the Atom export API.
func (c *Client) FetchArxiv(ctx context.Context, id string) (*Result, error) {
	query := fmt.Sprintf("%s?id_list=%s&max_results=1", c.arxivURL, url.QueryEscape(id))

	resp, err := c.get(ctx, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading arXiv response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: parsing arXiv feed: %v", ErrInvalidResponse, err)
	}

	// The API reports unknown IDs as an empty feed, and malformed ones as a
	// pseudo-entry whose ID points at an error page rather than an abstract.
	if len(feed.Entries) == 0 {
		return nil, fmt.Errorf("%w: arXiv:%s", ErrNotFound, id)
	}
	entry := feed.Entries[0]
	if !strings.Contains(entry.ID, "/abs/") {
		return nil, fmt.Errorf("%w: arXiv:%s", ErrNotFound, id)
	}

	return arxivResult(entry, id), nil
}

func arxivResult(entry atomEntry, id string) *Result {
	entryType := "misc"
	if entry.JournalRef != "" {
		entryType = "article"
	}

	rec := bib.New(entryType, id)

	var authors []string
	for _, a := range entry.Authors {
		authors = append(authors, strings.TrimSpace(a.Name))
	}
	if len(authors) > 0 {
		rec.SetField("author", strings.Join(authors, " and "))
	}

	if title := collapseSpace(entry.Title); title != "" {
		rec.SetField("title", title)
	}
	if t, err := time.Parse(time.RFC3339, entry.Published); err == nil {
		rec.SetField("year", strconv.Itoa(t.Year()))
	}

	rec.SetField("eprint", id)
	rec.SetField("archiveprefix", "arXiv")
	if len(entry.Categories) > 0 && entry.Categories[0].Term != "" {
		rec.SetField("primaryclass", entry.Categories[0].Term)
	}
	if entry.JournalRef != "" {
		rec.SetField("journal", collapseSpace(entry.JournalRef))
	}
	if entry.DOI != "" {
		rec.SetField("doi", entry.DOI)
	}
	rec.SetField("url", "https://arxiv.org/abs/"+id)

	return &Result{
		Record: rec,
		PDFURL: "https://arxiv.org/pdf/" + id,
	}
}

// collapseSpace trims s and folds the newline-and-indent runs the Atom feed
// wraps long values with into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Atom feed structures for the arXiv export API.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
	Published  string         `xml:"published"`
	JournalRef string         `xml:"journal_ref"`
	DOI        string         `xml:"doi"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}
