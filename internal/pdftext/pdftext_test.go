package pdftext

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRemovesNulAndControls(t *testing.T) {
	assert.Equal(t, "abcd\n\txy", Sanitize("ab\x00cd\x01\x02\n\txy"))
	assert.Equal(t, "", Sanitize("  \x00 "))
}

func TestExtractFile(t *testing.T) {
	doc, err := ExtractFile("testdata/renewable.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Pages)
	assert.Contains(t, doc.Text, "renewable")
}

func TestExtractFromReader(t *testing.T) {
	raw, err := os.ReadFile("testdata/renewable.pdf")
	require.NoError(t, err)
	doc, err := Extract(strings.NewReader(string(raw)), int64(len(raw)))
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Solar power")
}

func TestExtractRejectsNonPDF(t *testing.T) {
	_, err := Extract(strings.NewReader("definitely not a pdf"), 20)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoExtractableText)
}
