package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/aluex/ck/internal/bib"
)

// FetchDOI retrieves metadata for a DOI from the Crossref works API.
func (c *Client) FetchDOI(ctx context.Context, doi string) (*Result, error) {
	query := fmt.Sprintf("%s/%s", c.crossrefURL, url.PathEscape(doi))
	if c.mailto != "" {
		query += "?mailto=" + url.QueryEscape(c.mailto)
	}

	resp, err := c.get(ctx, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading Crossref response: %w", err)
	}

	var cr crossrefResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("%w: parsing Crossref work: %v", ErrInvalidResponse, err)
	}
	if cr.Message.DOI == "" {
		return nil, fmt.Errorf("%w: Crossref work without DOI", ErrInvalidResponse)
	}

	return crossrefResult(cr.Message), nil
}

func crossrefResult(work crossrefWork) *Result {
	entryType := bibType(work.Type)
	rec := bib.New(entryType, work.DOI)

	var authors []string
	for _, a := range work.Author {
		switch {
		case a.Family != "" && a.Given != "":
			authors = append(authors, a.Family+", "+a.Given)
		case a.Family != "":
			authors = append(authors, a.Family)
		case a.Name != "":
			// Organizations come back as a single literal name.
			authors = append(authors, "{"+a.Name+"}")
		}
	}
	if len(authors) > 0 {
		rec.SetField("author", strings.Join(authors, " and "))
	}

	if len(work.Title) > 0 && work.Title[0] != "" {
		rec.SetField("title", collapseSpace(work.Title[0]))
	}
	if len(work.ContainerTitle) > 0 && work.ContainerTitle[0] != "" {
		venue := collapseSpace(work.ContainerTitle[0])
		switch entryType {
		case "article":
			rec.SetField("journal", venue)
		case "inproceedings", "incollection":
			rec.SetField("booktitle", venue)
		}
	}
	if y, ok := work.Issued.year(); ok {
		rec.SetField("year", strconv.Itoa(y))
	}
	if work.Volume != "" {
		rec.SetField("volume", work.Volume)
	}
	if work.Issue != "" {
		rec.SetField("number", work.Issue)
	}
	if work.Page != "" {
		rec.SetField("pages", bibPages(work.Page))
	}
	if work.Publisher != "" && (entryType == "book" || entryType == "incollection") {
		rec.SetField("publisher", work.Publisher)
	}
	rec.SetField("doi", work.DOI)

	return &Result{
		Record: rec,
		PDFURL: work.pdfURL(),
	}
}

// bibPages rewrites a Crossref page range like "285-318" into the BibTeX
// double-dash form.
func bibPages(page string) string {
	if strings.Contains(page, "-") && !strings.Contains(page, "--") {
		return strings.Replace(page, "-", "--", 1)
	}
	return page
}

// bibType maps a Crossref work type to the nearest BibTeX entry type.
func bibType(t string) string {
	switch t {
	case "journal-article":
		return "article"
	case "proceedings-article":
		return "inproceedings"
	case "book-chapter", "book-section", "book-part":
		return "incollection"
	case "book", "monograph", "edited-book", "reference-book":
		return "book"
	case "report":
		return "techreport"
	case "dissertation":
		return "phdthesis"
	}
	return "misc"
}

// Crossref works API structures. Field lists here are the subset the BibTeX
// record needs, not the full schema.

type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	DOI            string           `json:"DOI"`
	Type           string           `json:"type"`
	Title          []string         `json:"title"`
	Author         []crossrefAuthor `json:"author"`
	ContainerTitle []string         `json:"container-title"`
	Publisher      string           `json:"publisher"`
	Issued         crossrefDate     `json:"issued"`
	Page           string           `json:"page"`
	Volume         string           `json:"volume"`
	Issue          string           `json:"issue"`
	Link           []crossrefLink   `json:"link"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (d crossrefDate) year() (int, bool) {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0, false
	}
	return d.DateParts[0][0], true
}

type crossrefLink struct {
	URL         string `json:"URL"`
	ContentType string `json:"content-type"`
}

func (w crossrefWork) pdfURL() string {
	for _, l := range w.Link {
		if l.ContentType == "application/pdf" {
			return l.URL
		}
	}
	return ""
}
