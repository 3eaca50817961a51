package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractTextWithMetaData implements PDFParserService. Pages are concatenated in
// order with no page limit. Whitespace-only output is reported as ErrEmptyContent.
func (p *pdfParserService) ExtractTextWithMetaData(data []byte) (content *PDFContent, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDataFormat)
	}

	// The pdf package panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("%w: %v", ErrDataFormat, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip the page; an all-unreadable document ends up as ErrEmptyContent.
			continue
		}

		textBuilder.WriteString(text)
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPage,
	}, nil
}
