package pdfmeta

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/docqa-client/internal/core/domain"
)

const pdfContentType = "application/pdf"

// Inspector counts the pages of PDF payloads. Other payloads report zero pages.
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (i *Inspector) Inspect(_ context.Context, file domain.File) (info domain.FileInfo, err error) {
	info = domain.FileInfo{
		Size:        int64(len(file.Data)),
		ContentType: file.ContentType,
	}
	if !isPDF(file) {
		return info, nil
	}

	// the parser panics on some truncated cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf %s: %v", file.Name, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		return info, fmt.Errorf("parse pdf %s: %w", file.Name, err)
	}
	info.Pages = reader.NumPage()
	return info, nil
}

func isPDF(file domain.File) bool {
	if strings.HasPrefix(file.ContentType, pdfContentType) {
		return true
	}
	return bytes.HasPrefix(file.Data, []byte("%PDF-"))
}
