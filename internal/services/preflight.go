package services

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const mimePDF = "application/pdf"

// DefaultPDFMaxPages is the page limit of synchronous Document AI requests.
const DefaultPDFMaxPages = 15

// PDFPreflight checks uploads before they are sent for extraction. PDFs are
// validated and trimmed to the processor page limit; images pass through.
type PDFPreflight struct {
	maxPages int
	conf     *model.Configuration
}

func NewPDFPreflight(maxPages int) *PDFPreflight {
	if maxPages <= 0 {
		maxPages = DefaultPDFMaxPages
	}
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFPreflight{maxPages: maxPages, conf: conf}
}

// Prepare returns the content and mime type to submit. An empty mimeType is
// sniffed from the content.
func (p *PDFPreflight) Prepare(content []byte, mimeType string) ([]byte, string, error) {
	mimeType = resolveMimeType(content, mimeType)
	if mimeType != mimePDF {
		return content, mimeType, nil
	}

	rs := bytes.NewReader(content)
	if err := api.Validate(rs, p.conf); err != nil {
		return nil, "", fmt.Errorf("failed to validate PDF: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, "", err
	}
	pageCount, err := api.PageCount(rs, p.conf)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount <= p.maxPages {
		return content, mimeType, nil
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, "", err
	}
	var trimmed bytes.Buffer
	if err := api.Trim(rs, &trimmed, []string{fmt.Sprintf("1-%d", p.maxPages)}, p.conf); err != nil {
		return nil, "", fmt.Errorf("failed to trim PDF to %d pages: %w", p.maxPages, err)
	}
	return trimmed.Bytes(), mimeType, nil
}

func resolveMimeType(content []byte, declared string) string {
	if declared == "" {
		declared = http.DetectContentType(content)
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return declared
	}
	return mediaType
}
