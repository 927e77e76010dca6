// Package fetch retrieves paper metadata and PDFs from arXiv, Crossref, and
// DBLP. A reference like an arXiv ID, a DOI, or a DBLP key resolves to one of
// those sources, and each source yields a BibTeX record plus, when the source
// serves one, a URL for the paper's PDF.
//
// All requests go through a shared rate limiter. arXiv asks for no more than
// one request every three seconds, and the other sources are comfortably
// within that bound, so a single limiter covers them all.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/aluex/ck/internal/bib"
)

const (
	// ArxivBaseURL is the arXiv Atom export API endpoint.
	ArxivBaseURL = "https://export.arxiv.org/api/query"

	// CrossrefBaseURL is the Crossref REST API works endpoint.
	CrossrefBaseURL = "https://api.crossref.org/works"

	// DBLPBaseURL is the DBLP record export endpoint.
	DBLPBaseURL = "https://dblp.org/rec"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestInterval spaces requests per arXiv's politeness guidance.
	requestInterval = 3 * time.Second

	userAgent = "ck/1.0 (https://github.com/aluex/ck)"
)

// Result is the outcome of a metadata fetch: a parsed BibTeX record and,
// when the source provides one, a URL for the paper's PDF.
type Result struct {
	Record *bib.Record
	PDFURL string
}

// Client is a rate-limited HTTP client for the paper metadata sources.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	mailto      string
	arxivURL    string
	crossrefURL string
	dblpURL     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMailto sets the contact address reported to Crossref's polite pool.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// WithBaseURLs overrides the upstream endpoints (for testing).
func WithBaseURLs(arxiv, crossref, dblp string) ClientOption {
	return func(c *Client) {
		c.arxivURL = arxiv
		c.crossrefURL = crossref
		c.dblpURL = dblp
	}
}

// NewClient creates a new metadata fetch client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Every(requestInterval), 1),
		arxivURL:    ArxivBaseURL,
		crossrefURL: CrossrefBaseURL,
		dblpURL:     DBLPBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch resolves ref and retrieves its metadata from the matching source.
func (c *Client) Fetch(ctx context.Context, ref string) (*Result, error) {
	r, err := Resolve(ref)
	if err != nil {
		return nil, err
	}

	switch r.Kind {
	case KindArxiv:
		return c.FetchArxiv(ctx, r.ID)
	case KindDOI:
		return c.FetchDOI(ctx, r.ID)
	case KindDBLP:
		return c.FetchDBLP(ctx, r.ID)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRef, ref)
}

// get performs a rate-limited GET and checks the response status. The caller
// owns the response body on success.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	if err := checkHTTPErrors(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp, nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, resp.Request.URL)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, URL: resp.Request.URL.String()}
	}
	return nil
}
