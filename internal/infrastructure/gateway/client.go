// Package gateway provides HTTP clients for the external commerce API:
// the catalog query endpoints and the order-creation endpoints.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"orderdesk/internal/core/apperror"
)

var tracer = otel.Tracer("orderdesk/gateway")

// DefaultTimeout bounds a single collaborator call.
const DefaultTimeout = 15 * time.Second

// NewHTTPClient returns the http.Client the gateway clients share.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// errorBody is the shape the commerce API uses for rejections.
// Its detail is surfaced verbatim to the user.
type errorBody struct {
	Detail string `json:"detail"`
}

// getJSON fetches url and decodes the response into out.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	ctx, span := tracer.Start(ctx, "gateway.get",
		trace.WithAttributes(attribute.String("http.url", url)))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return apperror.NewUpstream("").WithCause(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUpstream("").WithCause(fmt.Errorf("decode %s: %w", url, err))
	}
	return nil
}

// postJSON posts body to url and decodes the response into out.
func postJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	ctx, span := tracer.Start(ctx, "gateway.post",
		trace.WithAttributes(attribute.String("http.url", url)))
	defer span.End()

	raw, err := json.Marshal(body)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return apperror.NewUpstream("").WithCause(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUpstream("").WithCause(fmt.Errorf("decode %s: %w", url, err))
	}
	return nil
}

// upstreamError extracts the detail message from a rejection body.
func upstreamError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return apperror.NewUpstream(body.Detail).
			WithDetail("http_status", resp.StatusCode)
	}

	return apperror.NewUpstream("").
		WithDetail("http_status", resp.StatusCode)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
