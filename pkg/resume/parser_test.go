package resume

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseDocumentTextDocx(t *testing.T) {
	docx := buildDocx(t, `<w:document><w:body>`+
		`<w:p><w:r><w:t>Backend Engineer at Acme.</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Shipped billing rewrite.</w:t></w:r></w:p>`+
		`</w:body></w:document>`)
	txt, err := ParseDocumentText("resume.docx", docx)
	require.NoError(t, err)
	assert.Contains(t, txt, "Backend Engineer at Acme.")
	assert.Contains(t, txt, "Shipped billing rewrite.")
}

func TestParseDocumentTextDocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ParseDocumentText("resume.docx", buf.Bytes())
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestParseDocumentTextTxt(t *testing.T) {
	txt, err := ParseDocumentText("resume.txt", []byte("plain resume text"))
	require.NoError(t, err)
	assert.Equal(t, "plain resume text", txt)

	// no extension is treated as text too
	txt, err = ParseDocumentText("resume", []byte("also text"))
	require.NoError(t, err)
	assert.Equal(t, "also text", txt)
}

func TestParseDocumentTextUnsupported(t *testing.T) {
	_, err := ParseDocumentText("resume.odt", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestServiceParse(t *testing.T) {
	svc := NewService()
	res, err := svc.Parse("resume.txt", []byte("Built scalable\nsystems for\nmillions of users.\n\n- Led team of 5\n"))
	require.NoError(t, err)
	assert.Equal(t, "Built scalable systems for millions of users.\n\n- Led team of 5", res.Text)
	assert.Equal(t, len([]rune(res.Text)), res.Chars)
	assert.Equal(t, "resume.txt", res.Filename)
}

func TestServiceParseEmpty(t *testing.T) {
	svc := NewService()
	_, err := svc.Parse("resume.txt", []byte("   \n \n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestStripBinary(t *testing.T) {
	got := stripBinary("text\x00with\x01noise\nkept")
	assert.NotContains(t, got, "\x00")
	assert.Contains(t, got, "kept")
	assert.Contains(t, got, "\n")
}
