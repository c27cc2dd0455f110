package picker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestListFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tesis.pdf", "pdf body")
	writeFile(t, dir, "borrador.docx", "docx body")
	writeFile(t, dir, "notas.txt", "txt")
	writeFile(t, dir, "foto.png", "not a document")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "capitulos.pdf"), 0o755))

	docs, err := New(dir).List()
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "borrador.docx", docs[0].FileName)
	assert.Equal(t, "notas.txt", docs[1].FileName)
	assert.Equal(t, "tesis.pdf", docs[2].FileName)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", docs[0].MimeType)
	assert.Equal(t, "text/plain", docs[1].MimeType)
	assert.Equal(t, "application/pdf", docs[2].MimeType)
	assert.Equal(t, int64(8), docs[2].SizeBytes)
	assert.Equal(t, filepath.Join(dir, "tesis.pdf"), docs[2].SourceRef)
}

func TestListMatchesCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "TESIS.PDF", "pdf body")

	docs, err := New(dir).List()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "application/pdf", docs[0].MimeType)
}

func TestListMissingDirIsEmpty(t *testing.T) {
	docs, err := New(filepath.Join(t.TempDir(), "missing")).List()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCustomPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "datos.csv", "a,b")
	writeFile(t, dir, "tesis.pdf", "pdf")

	docs, err := New(dir, "*.csv").List()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "datos.csv", docs[0].FileName)
	assert.Equal(t, "application/octet-stream", docs[0].MimeType)
}

func TestPick(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tesis.pdf", "pdf body")

	p := New(dir)
	res := p.Pick("tesis.pdf")
	require.NoError(t, res.Err)
	assert.False(t, res.Canceled)
	assert.Equal(t, "tesis.pdf", res.Descriptor.FileName)
	assert.Equal(t, int64(8), res.Descriptor.SizeBytes)

	res = p.Pick("no-existe.pdf")
	assert.Error(t, res.Err)

	res = p.Canceled()
	assert.True(t, res.Canceled)
	assert.NoError(t, res.Err)
}
