package resume

import (
	"errors"

	"github.com/jobscout/agent/pkg/textproc"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx and txt are allowed")
	ErrEmptyDocument     = errors.New("no readable text found in document")
)

// ParseResult pairs the cleaned text with its character count for display.
type ParseResult struct {
	Text     string `json:"text"`
	Chars    int    `json:"chars"`
	Filename string `json:"filename,omitempty"`
}

// Service turns an uploaded resume into clean plain text.
type Service interface {
	Parse(filename string, data []byte) (ParseResult, error)
}

type service struct{}

func NewService() Service { return service{} }

// Parse extracts raw text from the document and reconstructs it into
// readable paragraphs and bullet lists.
func (service) Parse(filename string, data []byte) (ParseResult, error) {
	raw, err := ParseDocumentText(filename, data)
	if err != nil {
		return ParseResult{}, err
	}
	clean := textproc.Reconstruct(raw)
	if clean == "" {
		return ParseResult{}, ErrEmptyDocument
	}
	return ParseResult{
		Text:     clean,
		Chars:    len([]rune(clean)),
		Filename: filename,
	}, nil
}
