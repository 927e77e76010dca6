package fetch

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies which upstream source serves a reference.
type Kind int

const (
	KindUnknown Kind = iota
	KindArxiv
	KindDOI
	KindDBLP
)

func (k Kind) String() string {
	switch k {
	case KindArxiv:
		return "arxiv"
	case KindDOI:
		return "doi"
	case KindDBLP:
		return "dblp"
	}
	return "unknown"
}

// Ref is a normalized paper reference: the source that serves it and the
// identifier to ask that source for.
type Ref struct {
	Kind Kind
	ID   string
}

var (
	// New-style arXiv IDs (2007 onward), e.g. 2301.00001 or 2301.00001v2.
	arxivNewID = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)

	// Old-style arXiv IDs, e.g. hep-th/9901001 or math.GT/0309136.
	arxivOldID = regexp.MustCompile(`^[a-z-]+(\.[A-Z]{2})?/\d{7}(v\d+)?$`)

	doiID = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

	dblpID = regexp.MustCompile(`^(conf|journals|books|series|reference|phd|ms|tr)/\S+$`)

	versionSuffix = regexp.MustCompile(`v\d+$`)
)

// Resolve classifies a user-supplied paper reference. It accepts bare
// identifiers (arXiv IDs, DOIs, DBLP keys) as well as the common URL forms
// for each, and normalizes to the bare identifier. arXiv version suffixes
// are dropped so that a reference always names the paper, not a revision.
func Resolve(ref string) (Ref, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Ref{}, fmt.Errorf("%w: empty reference", ErrUnknownRef)
	}

	if id, ok := arxivRef(ref); ok {
		return Ref{Kind: KindArxiv, ID: id}, nil
	}
	if id, ok := doiRef(ref); ok {
		return Ref{Kind: KindDOI, ID: id}, nil
	}
	if id, ok := dblpRef(ref); ok {
		return Ref{Kind: KindDBLP, ID: id}, nil
	}
	return Ref{}, fmt.Errorf("%w: %q", ErrUnknownRef, ref)
}

func arxivRef(ref string) (string, bool) {
	id := strings.TrimPrefix(ref, "arXiv:")
	if path, ok := hostPath(ref, "arxiv.org", "export.arxiv.org"); ok {
		path = strings.TrimPrefix(path, "abs/")
		path = strings.TrimPrefix(path, "pdf/")
		path = strings.TrimSuffix(path, ".pdf")
		id = path
	}
	if arxivNewID.MatchString(id) || arxivOldID.MatchString(id) {
		return versionSuffix.ReplaceAllString(id, ""), true
	}
	return "", false
}

func doiRef(ref string) (string, bool) {
	id := strings.TrimPrefix(ref, "doi:")
	if path, ok := hostPath(ref, "doi.org", "dx.doi.org"); ok {
		id = path
	}
	if doiID.MatchString(id) {
		return id, true
	}
	return "", false
}

func dblpRef(ref string) (string, bool) {
	id := ref
	if path, ok := hostPath(ref, "dblp.org", "dblp.uni-trier.de", "dblp.dagstuhl.de"); ok {
		path = strings.TrimPrefix(path, "rec/")
		path = strings.TrimPrefix(path, "bibtex/")
		path = strings.TrimPrefix(path, "html/")
		path = strings.TrimSuffix(path, ".html")
		path = strings.TrimSuffix(path, ".bib")
		id = path
	}
	if dblpID.MatchString(id) {
		return id, true
	}
	return "", false
}

// hostPath returns what follows "host/" in ref when ref is a URL on one of
// the given hosts, ignoring the scheme, a leading "www.", and any query
// string.
func hostPath(ref string, hosts ...string) (string, bool) {
	s := strings.TrimPrefix(ref, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	for _, host := range hosts {
		if strings.HasPrefix(s, host+"/") {
			rest := strings.TrimPrefix(s, host+"/")
			if i := strings.IndexByte(rest, '?'); i >= 0 {
				rest = rest[:i]
			}
			return rest, true
		}
	}
	return "", false
}
