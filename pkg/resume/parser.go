package resume

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ParseDocumentText extracts plain text from supported resume formats.
// Supports: .pdf, .docx and .txt (a missing extension is treated as text).
func ParseDocumentText(filename string, data []byte) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		return extractTextFromPDF(data), nil
	case ".docx":
		return extractTextFromDocx(data)
	case ".txt", "":
		return string(data), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func extractTextFromPDF(data []byte) string {
	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		// Fall back to the raw bytes; stripBinary keeps whatever readable
		// text is embedded in the stream.
		return stripBinary(string(data))
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return stripBinary(string(data))
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return stripBinary(string(data))
	}
	return buf.String()
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			defer rc.Close()
			docXML, err = io.ReadAll(rc)
			if err != nil {
				return "", err
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", ErrEmptyDocument
	}
	xml := string(docXML)
	// Convert paragraph boundaries to newlines (very naive but effective).
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	// Remove all XML tags.
	txt := reTags.ReplaceAllString(xml, " ")
	return txt, nil
}

var (
	reTags      = regexp.MustCompile(`<[^>]+>`)
	reNonPrint  = regexp.MustCompile(`[^\x09\x0A\x0D\x20-\x7E\p{L}\p{N}\p{P}\p{S}]`)
	reSpaceRuns = regexp.MustCompile(`[ \t]{2,}`)
)

// stripBinary collapses control characters and binary noise to spaces,
// keeping tabs, newlines and printable text.
func stripBinary(s string) string {
	s = reNonPrint.ReplaceAllString(s, " ")
	return reSpaceRuns.ReplaceAllString(s, " ")
}
