package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/reeldesk/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader tags every outbound request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// envelope is the common response shape of the backend.
type envelope struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Token      string          `json:"token"`
	ResetToken string          `json:"resetToken"`
	IsValid    *bool           `json:"isValid"`
	Data       json.RawMessage `json:"data"`
}

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     logging.Logger
}

// NewHTTPClient builds a client for baseURL. A nil httpClient means
// http.DefaultClient; a nil token source sends no Authorization header.
func NewHTTPClient(baseURL string, httpClient *http.Client, token TokenSource, log logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if token == nil {
		token = func(context.Context) (string, error) { return "", nil }
	}
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		token:   token,
		log:     log,
	}
}

func (c *HTTPClient) buildURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

// do sends one request. When out is nil the response body is ignored and
// only the HTTP status decides success.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body any, out *envelope) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(endpoint), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.log.With("method", method, "endpoint", endpoint, "request_id", requestID)
	log.Debug(ctx, "api request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "api transport failure", "error", err)
		return classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Kind: kindForStatus(resp.StatusCode)}
		var e envelope
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &e) == nil && e.Message != "" {
			apiErr.Message = e.Message
		}
		log.Debug(ctx, "api failure", "status", resp.StatusCode, "message", apiErr.Error())
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrMalformedResponse, endpoint, err)
	}
	if out.Status != "success" {
		msg := out.Message
		if msg == "" {
			msg = "request failed"
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg, Kind: ErrRejected}
	}
	return nil
}

func classifyTransport(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func decodeData(endpoint string, raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: %s: missing data", ErrMalformedResponse, endpoint)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, endpoint, err)
	}
	return nil
}
