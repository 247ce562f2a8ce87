package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tradewatch/disclosures/internal/model"
)

// Archive is one yearly House clerk ZIP holding the XML filing index: one
// element per filer per filing. Only periodic transaction reports are
// extracted.
type Archive struct {
	Data []byte
	Year int
}

func (Archive) Format() model.SourceFormat { return model.FormatArchiveMember }

// periodicTransactionCode is the index code for PTR filings. Part of the
// archive contract, not configuration.
const periodicTransactionCode = "P"

// ptrDocumentTemplate derives the filing document URL; the archive itself
// carries no URL field.
const ptrDocumentTemplate = "%s/public_disc/ptr-pdfs/%d/%s.pdf"

type archiveIndex struct {
	XMLName xml.Name        `xml:"FinancialDisclosure"`
	Members []archiveMember `xml:"Member"`
}

type archiveMember struct {
	First      string `xml:"First"`
	Last       string `xml:"Last"`
	FilingType string `xml:"FilingType"`
	FilingDate string `xml:"FilingDate"`
	Year       int    `xml:"Year"`
	DocID      string `xml:"DocID"`
}

func adaptArchive(frag Archive, ctx Context) ([]model.PartialFiling, int, error) {
	zr, err := zip.NewReader(bytes.NewReader(frag.Data), int64(len(frag.Data)))
	if err != nil {
		return nil, 0, &ShapeDriftError{Format: model.FormatArchiveMember, Detail: "not a zip archive: " + err.Error()}
	}

	var index *archiveIndex
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, 0, fmt.Errorf("open archive member %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, 0, fmt.Errorf("read archive member %s: %w", f.Name, err)
		}

		var idx archiveIndex
		if err := xml.Unmarshal(data, &idx); err != nil {
			return nil, 0, &ShapeDriftError{
				Format: model.FormatArchiveMember,
				Detail: "index member is not the expected xml: " + err.Error(),
			}
		}
		index = &idx
		break
	}

	if index == nil {
		return nil, 0, &ShapeDriftError{Format: model.FormatArchiveMember, Detail: "archive has no xml index member"}
	}

	var (
		partials []model.PartialFiling
		skipped  int
	)
	for _, m := range index.Members {
		if m.FilingType != periodicTransactionCode {
			continue
		}
		if m.DocID == "" || m.Last == "" {
			skipped++
			continue
		}

		year := m.Year
		if year == 0 {
			year = frag.Year
		}

		partials = append(partials, model.PartialFiling{
			Chamber:      model.ChamberHouse,
			Politician:   strings.TrimSpace(m.First + " " + m.Last),
			FilingRaw:    m.FilingDate,
			SourceURL:    fmt.Sprintf(ptrDocumentTemplate, strings.TrimSuffix(ctx.BaseURL, "/"), year, m.DocID),
			SourceFormat: model.FormatArchiveMember,
			Confidence:   confArchive,
		})
	}

	return partials, skipped, nil
}
