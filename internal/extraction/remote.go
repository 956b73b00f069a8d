package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Remote implements the Extractor interface against an external
// extraction endpoint: one multipart POST with a single part named
// "file", answered by a JSON envelope with a boolean success field.
type Remote struct {
	endpoint string
	client   *http.Client
}

// NewRemote creates a new Remote Extractor instance. The endpoint is the
// full URL of the extraction service; a bare base URL gets the default
// /upload path appended.
func NewRemote(endpoint string) (*Remote, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("extraction endpoint is required")
	}
	if !strings.Contains(strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://"), "/") {
		endpoint = strings.TrimSuffix(endpoint, "/") + "/upload"
	}

	return &Remote{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// envelope is the response shape of the extraction endpoint
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// ExtractSlip posts the image to the extraction endpoint and maps every
// outcome to either a *SlipData or an error with a readable message.
func (r *Remote) ExtractSlip(ctx context.Context, filename string, imageData []byte, contentType string) (*SlipData, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("writing form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing form writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading extraction response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		// Non-JSON bodies and error pages collapse into one generic
		// transport failure.
		return nil, fmt.Errorf("extraction service returned an unexpected response (status %d)", resp.StatusCode)
	}

	if !env.Success {
		if env.Error != "" {
			return nil, &ServiceError{Message: env.Error}
		}
		return nil, fmt.Errorf("extraction service returned an unexpected response (status %d)", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("extraction service returned an unexpected response (status %d)", resp.StatusCode)
	}

	if len(env.Data) == 0 {
		return nil, fmt.Errorf("extraction service returned an unexpected response (status %d)", resp.StatusCode)
	}

	var data SlipData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("extraction service returned an unexpected response (status %d)", resp.StatusCode)
	}

	if data.Date != nil {
		normalized := normalizeDate(*data.Date)
		data.Date = &normalized
	}

	return &data, nil
}

// Close closes the Remote extractor (no-op for HTTP client)
func (r *Remote) Close() error {
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
