package validators

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeader builds a real multipart.FileHeader by round-tripping the
// content through an HTTP request, the same way gin hands it to handlers
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestPortfolioFileValidatorAcceptsAllowedTypes(t *testing.T) {
	viper.Set("upload.max_size", int64(10<<20))

	for _, name := range []string{"cv.pdf", "photo.JPG", "scan.jpeg", "cert.png", "essay.doc", "report.DOCX"} {
		code, f, err := PortfolioFileValidator(makeFileHeader(t, name, []byte("%PDF-1.4 fake content")))
		require.NoError(t, err, name)
		assert.Zero(t, code, name)
		require.NotNil(t, f, name)
		f.Close()
	}
}

func TestPortfolioFileValidatorRejectsDisallowedTypes(t *testing.T) {
	viper.Set("upload.max_size", int64(10<<20))

	for _, name := range []string{"run.exe", "page.html", "archive.zip", "noext"} {
		code, f, err := PortfolioFileValidator(makeFileHeader(t, name, []byte("whatever")))
		assert.ErrorIs(t, err, ErrFileTypeUnsupported, name)
		assert.Equal(t, http.StatusBadRequest, code, name)
		assert.Nil(t, f, name)
	}
}

func TestPortfolioFileValidatorNoFile(t *testing.T) {
	code, f, err := PortfolioFileValidator(nil)
	assert.ErrorIs(t, err, ErrNoFile)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Nil(t, f)
}

func TestPortfolioFileValidatorEmptyFilename(t *testing.T) {
	fh := &multipart.FileHeader{Filename: "   "}

	code, f, err := PortfolioFileValidator(fh)
	assert.ErrorIs(t, err, ErrEmptyFilename)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Nil(t, f)
}

func TestPortfolioFileValidatorEnforcesSizeCap(t *testing.T) {
	viper.Set("upload.max_size", int64(16))

	code, f, err := PortfolioFileValidator(makeFileHeader(t, "big.pdf", bytes.Repeat([]byte("a"), 64)))
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	assert.Nil(t, f)
}

func TestPortfolioFileValidatorRewindsFile(t *testing.T) {
	viper.Set("upload.max_size", int64(10<<20))

	content := []byte("%PDF-1.4 rewind check")
	code, f, err := PortfolioFileValidator(makeFileHeader(t, "cv.pdf", content))
	require.NoError(t, err)
	require.Zero(t, code)
	defer f.Close()

	got := make([]byte, len(content))
	n, err := f.Read(got)
	require.NoError(t, err)
	assert.Equal(t, content, got[:n])
}
