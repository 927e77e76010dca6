package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/time/rate"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantID   string
		wantErr  bool
	}{
		// arXiv identifiers
		{
			name:     "new style id",
			input:    "2301.00001",
			wantKind: KindArxiv,
			wantID:   "2301.00001",
		},
		{
			name:     "new style id with version",
			input:    "2301.00001v2",
			wantKind: KindArxiv,
			wantID:   "2301.00001",
		},
		{
			name:     "arXiv prefix",
			input:    "arXiv:2301.00001",
			wantKind: KindArxiv,
			wantID:   "2301.00001",
		},
		{
			name:     "old style id",
			input:    "hep-th/9901001",
			wantKind: KindArxiv,
			wantID:   "hep-th/9901001",
		},
		{
			name:     "old style id with subject class",
			input:    "math.GT/0309136",
			wantKind: KindArxiv,
			wantID:   "math.GT/0309136",
		},
		{
			name:     "abs url",
			input:    "https://arxiv.org/abs/2301.00001",
			wantKind: KindArxiv,
			wantID:   "2301.00001",
		},
		{
			name:     "pdf url with version",
			input:    "https://www.arxiv.org/pdf/2301.00001v2.pdf",
			wantKind: KindArxiv,
			wantID:   "2301.00001",
		},
		{
			name:     "old style abs url",
			input:    "http://arxiv.org/abs/hep-th/9901001v1",
			wantKind: KindArxiv,
			wantID:   "hep-th/9901001",
		},
		// DOIs
		{
			name:     "bare doi",
			input:    "10.1145/3133956.3134093",
			wantKind: KindDOI,
			wantID:   "10.1145/3133956.3134093",
		},
		{
			name:     "doi prefix",
			input:    "doi:10.1007/978-3-540-28628-8_3",
			wantKind: KindDOI,
			wantID:   "10.1007/978-3-540-28628-8_3",
		},
		{
			name:     "doi.org url",
			input:    "https://doi.org/10.1145/3133956.3134093",
			wantKind: KindDOI,
			wantID:   "10.1145/3133956.3134093",
		},
		{
			name:     "dx.doi.org url",
			input:    "http://dx.doi.org/10.1145/3133956.3134093",
			wantKind: KindDOI,
			wantID:   "10.1145/3133956.3134093",
		},
		// DBLP keys
		{
			name:     "conference key",
			input:    "conf/focs/Shor94",
			wantKind: KindDBLP,
			wantID:   "conf/focs/Shor94",
		},
		{
			name:     "journal key",
			input:    "journals/cacm/Knuth74",
			wantKind: KindDBLP,
			wantID:   "journals/cacm/Knuth74",
		},
		{
			name:     "record url",
			input:    "https://dblp.org/rec/conf/focs/Shor94.html",
			wantKind: KindDBLP,
			wantID:   "conf/focs/Shor94",
		},
		{
			name:     "record url with view query",
			input:    "https://dblp.org/rec/conf/focs/Shor94.html?view=bibtex",
			wantKind: KindDBLP,
			wantID:   "conf/focs/Shor94",
		},
		{
			name:     "bib export url",
			input:    "https://dblp.uni-trier.de/rec/journals/cacm/Knuth74.bib",
			wantKind: KindDBLP,
			wantID:   "journals/cacm/Knuth74",
		},
		// Unrecognized
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "free text",
			input:   "quantum factoring",
			wantErr: true,
		},
		{
			name:    "github style path",
			input:   "golang/go",
			wantErr: true,
		},
		{
			name:    "unrelated url",
			input:   "https://example.org/paper.pdf",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRef) {
					t.Errorf("Resolve() error = %v, want ErrUnknownRef", err)
				}
				return
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Resolve() kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.ID != tt.wantID {
				t.Errorf("Resolve() id = %v, want %v", got.ID, tt.wantID)
			}
		})
	}
}

// testClient points a client at a test server and disables request spacing.
func testClient(srvURL string) *Client {
	c := NewClient(WithBaseURLs(srvURL, srvURL, srvURL))
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

const arxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.00001v2</id>
    <title>Sharp Bounds for
  Example Systems</title>
    <summary>We study example systems.</summary>
    <published>2023-01-02T18:59:59Z</published>
    <updated>2023-03-01T10:00:00Z</updated>
    <author><name>Ada Lovelace</name></author>
    <author><name>Charles Babbage</name></author>
    <category term="cs.CR" scheme="http://arxiv.org/schemas/atom"/>
    <category term="cs.LO" scheme="http://arxiv.org/schemas/atom"/>
    <arxiv:doi xmlns:arxiv="http://arxiv.org/schemas/atom">10.1000/example</arxiv:doi>
  </entry>
</feed>`

func TestFetchArxiv(t *testing.T) {
	var gotIDList string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIDList = r.URL.Query().Get("id_list")
		fmt.Fprint(w, arxivFeed)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	res, err := c.FetchArxiv(context.Background(), "2301.00001")
	if err != nil {
		t.Fatalf("FetchArxiv() error = %v", err)
	}

	if gotIDList != "2301.00001" {
		t.Errorf("id_list = %q, want %q", gotIDList, "2301.00001")
	}

	rec := res.Record
	if rec.Entry.Type != "misc" {
		t.Errorf("entry type = %q, want %q", rec.Entry.Type, "misc")
	}
	checks := map[string]string{
		"author":        "Ada Lovelace and Charles Babbage",
		"title":         "Sharp Bounds for Example Systems",
		"year":          "2023",
		"eprint":        "2301.00001",
		"archiveprefix": "arXiv",
		"primaryclass":  "cs.CR",
		"doi":           "10.1000/example",
		"url":           "https://arxiv.org/abs/2301.00001",
	}
	for field, want := range checks {
		if got := rec.Field(field); got != want {
			t.Errorf("field %s = %q, want %q", field, got, want)
		}
	}

	if want := "https://arxiv.org/pdf/2301.00001"; res.PDFURL != want {
		t.Errorf("PDFURL = %q, want %q", res.PDFURL, want)
	}
}

func TestFetchArxivNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchArxiv(context.Background(), "9999.99999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchArxiv() error = %v, want ErrNotFound", err)
	}
}

func TestArxivResultPublished(t *testing.T) {
	entry := atomEntry{
		ID:         "http://arxiv.org/abs/1607.00001v1",
		Title:      "A Published Paper",
		Authors:    []atomAuthor{{Name: "Grace Hopper"}},
		Published:  "2016-07-01T00:00:00Z",
		JournalRef: "J. Example 12 (2017) 34-56",
	}

	res := arxivResult(entry, "1607.00001")
	rec := res.Record
	if rec.Entry.Type != "article" {
		t.Errorf("entry type = %q, want %q", rec.Entry.Type, "article")
	}
	if got, want := rec.Field("journal"), "J. Example 12 (2017) 34-56"; got != want {
		t.Errorf("journal = %q, want %q", got, want)
	}
}

const crossrefWorkJSON = `{
  "status": "ok",
  "message-type": "work",
  "message": {
    "DOI": "10.1145/3133956.3134093",
    "type": "proceedings-article",
    "title": ["Practical Secure Aggregation for Privacy-Preserving Machine Learning"],
    "author": [
      {"given": "Keith", "family": "Bonawitz"},
      {"name": "Aggregation Working Group"}
    ],
    "container-title": ["Proceedings of the 2017 ACM SIGSAC Conference on Computer and Communications Security"],
    "publisher": "ACM",
    "issued": {"date-parts": [[2017, 10, 30]]},
    "page": "1175-1191",
    "link": [
      {"URL": "https://example.org/bonawitz17.pdf", "content-type": "application/pdf"}
    ]
  }
}`

func TestFetchDOI(t *testing.T) {
	var gotMailto string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMailto = r.URL.Query().Get("mailto")
		fmt.Fprint(w, crossrefWorkJSON)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	WithMailto("librarian@example.org")(c)

	res, err := c.FetchDOI(context.Background(), "10.1145/3133956.3134093")
	if err != nil {
		t.Fatalf("FetchDOI() error = %v", err)
	}

	if gotMailto != "librarian@example.org" {
		t.Errorf("mailto = %q, want %q", gotMailto, "librarian@example.org")
	}

	rec := res.Record
	if rec.Entry.Type != "inproceedings" {
		t.Errorf("entry type = %q, want %q", rec.Entry.Type, "inproceedings")
	}
	checks := map[string]string{
		"author":    "Bonawitz, Keith and {Aggregation Working Group}",
		"title":     "Practical Secure Aggregation for Privacy-Preserving Machine Learning",
		"booktitle": "Proceedings of the 2017 ACM SIGSAC Conference on Computer and Communications Security",
		"year":      "2017",
		"pages":     "1175--1191",
		"doi":       "10.1145/3133956.3134093",
	}
	for field, want := range checks {
		if got := rec.Field(field); got != want {
			t.Errorf("field %s = %q, want %q", field, got, want)
		}
	}

	if want := "https://example.org/bonawitz17.pdf"; res.PDFURL != want {
		t.Errorf("PDFURL = %q, want %q", res.PDFURL, want)
	}
}

const dblpRecord = `@inproceedings{DBLP:conf/focs/Shor94,
  author    = {Peter W. Shor},
  title     = {Algorithms for Quantum Computation: Discrete Logarithms and Factoring},
  booktitle = {{FOCS}},
  pages     = {124--134},
  publisher = {{IEEE} Computer Society},
  year      = {1994},
  crossref  = {DBLP:conf/focs/1994}
}

@proceedings{DBLP:conf/focs/1994,
  title = {35th Annual Symposium on Foundations of Computer Science},
  year  = {1994}
}`

func TestFetchDBLP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dblpRecord)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	res, err := c.FetchDBLP(context.Background(), "conf/focs/Shor94")
	if err != nil {
		t.Fatalf("FetchDBLP() error = %v", err)
	}

	rec := res.Record
	if got, want := rec.CK(), "DBLP:conf/focs/Shor94"; got != want {
		t.Errorf("cite name = %q, want %q", got, want)
	}
	if got, want := rec.Field("author"), "Peter W. Shor"; got != want {
		t.Errorf("author = %q, want %q", got, want)
	}
	if got, want := rec.Field("year"), "1994"; got != want {
		t.Errorf("year = %q, want %q", got, want)
	}
	if got := rec.Field("crossref"); got != "" {
		t.Errorf("crossref = %q, want it stripped", got)
	}
	if res.PDFURL != "" {
		t.Errorf("PDFURL = %q, want empty", res.PDFURL)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchDBLP(context.Background(), "conf/focs/Missing00")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FetchDBLP() error = %v, want ErrNotFound", err)
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound() = false for %v", err)
	}
}

func TestBibPages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1175-1191", "1175--1191"},
		{"124--134", "124--134"},
		{"42", "42"},
	}
	for _, tt := range tests {
		if got := bibPages(tt.input); got != tt.want {
			t.Errorf("bibPages(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBibType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"journal-article", "article"},
		{"proceedings-article", "inproceedings"},
		{"book", "book"},
		{"dissertation", "phdthesis"},
		{"posted-content", "misc"},
		{"", "misc"},
	}
	for _, tt := range tests {
		if got := bibType(tt.input); got != tt.want {
			t.Errorf("bibType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDownloadPDF(t *testing.T) {
	payload := "%PDF-1.5\nfake pdf bytes\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "CMT12.pdf")

	c := testClient(srv.URL)
	if err := c.DownloadPDF(context.Background(), srv.URL+"/paper.pdf", dest); err != nil {
		t.Fatalf("DownloadPDF() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != payload {
		t.Errorf("downloaded %q, want %q", data, payload)
	}

	// The staging file must be gone once the download lands.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("destination dir has %d entries, want 1", len(entries))
	}
}

func TestDownloadPDFRejectsNonPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>rate limited, try later</html>")
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "CMT12.pdf")

	c := testClient(srv.URL)
	err := c.DownloadPDF(context.Background(), srv.URL+"/paper.pdf", dest)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("DownloadPDF() error = %v, want ErrInvalidResponse", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("destination dir has %d entries, want 0", len(entries))
	}
}
