// Package predict talks to the association prediction backend.
package predict

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/basket-insights/internal/model"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
)

// Backend paths.
const (
	PredictPath = "/predict"
	SamplePath  = "/data/test.csv"
)

// UploadFileName is the file name every upload is sent under, whatever the
// local file is called.
const UploadFileName = "test.csv"

const (
	fileField       = "file"
	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 30 * time.Second
)

// Predictor submits a CSV file for association prediction.
type Predictor interface {
	Predict(ctx context.Context, r io.Reader) (*model.PredictionResult, error)
}

// Client is the HTTP implementation of Predictor.
type Client struct {
	httpClient *http.Client
	progress   io.Writer
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithProgress renders an upload progress bar to w.
func WithProgress(w io.Writer) Option {
	return func(c *Client) {
		c.progress = w
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict uploads the CSV content read from r and decodes the predictions.
// Non-2xx answers yield a *ServerError; every other failure, including a
// success body that is not JSON, yields a *TransportError.
func (c *Client) Predict(ctx context.Context, r io.Reader) (*model.PredictionResult, error) {
	body, contentType, err := encodeUpload(r)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var reader io.Reader = body
	if c.progress != nil {
		bar := progressbar.NewOptions64(int64(body.Len()),
			progressbar.OptionSetWriter(c.progress),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan]Uploading test.csv...[reset]"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionClearOnFinish(),
		)
		pr := progressbar.NewReader(body, bar)
		reader = &pr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PredictPath, reader)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.ContentLength = int64(body.Len())
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	slog.Debug("Submitting prediction request",
		"url", req.URL.String(),
		"request_id", requestID,
		"bytes", req.ContentLength)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("Prediction request rejected",
			"request_id", requestID,
			"status", resp.StatusCode,
			"duration", time.Since(start))
		return nil, &ServerError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	result, err := model.DecodePrediction(data)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	slog.Info("Prediction received",
		"request_id", requestID,
		"associations", len(result.Associations),
		"score", result.Score,
		"duration", time.Since(start))

	return result, nil
}

// FetchSample downloads the reference input file served by the backend and
// copies it to w.
func (c *Client) FetchSample(ctx context.Context, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+SamplePath, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create sample request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return 0, &ServerError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to save sample: %w", err)
	}
	return n, nil
}

// encodeUpload builds the multipart body holding a single "file" part.
func encodeUpload(r io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(fileField, UploadFileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}
