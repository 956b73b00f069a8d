package submission

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Upload is one validated slip image captured from the intake control.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// InvalidFileTypeError rejects a file whose media type is not in the
// image family. Nothing else happens to the file: no extraction call,
// no log mutation.
type InvalidFileTypeError struct {
	FileName    string
	ContentType string
}

func (e *InvalidFileTypeError) Error() string {
	return fmt.Sprintf("invalid file type %q: please upload a JPG, JPEG, or PNG image", e.ContentType)
}

// FileFromForm captures a single validated upload from a parsed
// multipart form. When several files arrive under the "file" field only
// the first is used and the rest are silently ignored; one submission
// carries one slip.
func FileFromForm(form *multipart.Form) (*Upload, error) {
	if form == nil || len(form.File["file"]) == 0 {
		return nil, fmt.Errorf("no file was selected: please choose a slip image to upload")
	}

	header := form.File["file"][0]
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}

	contentType := effectiveContentType(header.Header.Get("Content-Type"), header.Filename)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &InvalidFileTypeError{FileName: header.Filename, ContentType: contentType}
	}

	return &Upload{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// effectiveContentType resolves the media type of an upload, falling
// back to the filename extension when the part carries no header.
func effectiveContentType(headerType, filename string) string {
	headerType = strings.ToLower(strings.TrimSpace(headerType))
	if headerType != "" && headerType != "application/octet-stream" {
		return headerType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	case ".pdf":
		return "application/pdf"
	default:
		if headerType != "" {
			return headerType
		}
		return "application/octet-stream"
	}
}
