package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	ErrNoFile              = errors.New("no file provided")
	ErrEmptyFilename       = errors.New("no file name provided")
	ErrFileNameTooLong     = errors.New("file name is too long")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeUnsupported = errors.New("unsupported file type")
)

// Document types students may attach to their portfolio
var allowedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}

const maxFileNameSize = 255

// PortfolioFileValidator checks an uploaded portfolio document against the
// extension allow-list and the configured size cap. On success the opened
// file is returned positioned at the start
func PortfolioFileValidator(fh *multipart.FileHeader) (int, multipart.File, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, ErrNoFile
	}

	if strings.TrimSpace(fh.Filename) == "" {
		return http.StatusBadRequest, nil, ErrEmptyFilename
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, ErrFileNameTooLong
	}

	ext := strings.ToLower(path.Ext(fh.Filename))
	if !slices.Contains(allowedExtensions, ext) {
		return http.StatusBadRequest, nil, ErrFileTypeUnsupported
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, nil, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}

	// The extension is authoritative. Sniffing the content only flags
	// renamed binaries in the logs
	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	if !mimeMatchesExt(mime, ext) {
		zap.L().Warn("Uploaded file content does not match its extension",
			zap.String("filename", fh.Filename),
			zap.String("detected", mime.String()))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, err
	}

	return 0, f, nil
}

func mimeMatchesExt(m *mimetype.MIME, ext string) bool {
	switch ext {
	case ".pdf":
		return m.Is("application/pdf")
	case ".jpg", ".jpeg":
		return m.Is("image/jpeg")
	case ".png":
		return m.Is("image/png")
	case ".doc":
		return m.Is("application/msword")
	case ".docx":
		// docx files are zip containers, some producers don't set the full type
		return m.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document") ||
			m.Is("application/zip")
	}

	return false
}
