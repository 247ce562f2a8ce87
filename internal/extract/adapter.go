package extract

import (
	"regexp"
	"strings"

	"github.com/tradewatch/disclosures/internal/model"
)

// Extraction confidence assigned per source format, reflecting how faithful
// each shape is to the underlying filing.
const (
	confTabular  = 0.9
	confHTML     = 0.8
	confArchive  = 0.95
	confDocTable = 0.6
)

// Fragment is one raw unit of portal output, tagged by its source format.
type Fragment interface {
	Format() model.SourceFormat
}

// Context carries filing-level fields already known to the caller when a
// fragment only describes part of a filing (e.g. one transaction row of a
// detail page).
type Context struct {
	Chamber    model.Chamber
	BaseURL    string // Portal base, for resolving relative anchors
	Politician string
	FilingDate string // Source text, normalized later
	SourceURL  string // Filing detail/document URL
	Year       int    // Archive year, used for document URL templating
}

// Adapt converts one fragment into zero or more PartialFilings. The second
// return value counts rows that were skipped as row-scoped adaptation
// failures. A non-nil error is page-scoped (shape drift or an unusable
// single-row fragment).
func Adapt(frag Fragment, ctx Context) ([]model.PartialFiling, int, error) {
	switch f := frag.(type) {
	case TabularRow:
		p, err := adaptTabularRow(f, ctx)
		if err != nil {
			return nil, 1, err
		}
		return []model.PartialFiling{p}, 0, nil
	case HTMLTable:
		return adaptHTMLTable(f, ctx)
	case Archive:
		return adaptArchive(f, ctx)
	case DocumentTable:
		return adaptDocumentTable(f, ctx)
	default:
		return nil, 0, &ShapeDriftError{Format: frag.Format(), Detail: "unknown fragment type"}
	}
}

var (
	anchorHrefRe = regexp.MustCompile(`href=["']?([^"' >]+)`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	spaceRe      = regexp.MustCompile(`\s+`)
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
)

// stripTags removes markup and collapses whitespace.
func stripTags(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// displayName turns a source name into "First Last". Sources print either
// "Last, First" or already-ordered names, sometimes with a parenthetical
// office suffix.
func displayName(s string) string {
	s = parenRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
	last, first, ok := strings.Cut(s, ",")
	if !ok {
		return s
	}
	return strings.TrimSpace(first) + " " + strings.TrimSpace(last)
}

// resolveURL joins a possibly-relative anchor target with the portal base.
func resolveURL(base, href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(href, "/")
}
