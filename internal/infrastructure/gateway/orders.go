package gateway

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"orderdesk/internal/domain/checkout"
)

// OrderClient submits assembled orders to one creation endpoint of the
// commerce API. Sales and purchases use separate instances with their own
// paths. A rejection's detail message travels back verbatim inside an
// upstream error.
type OrderClient struct {
	baseURL string
	path    string
	http    *http.Client
}

// NewOrderClient creates an order client for one creation endpoint,
// e.g. "/api/sales" or "/api/purchases".
func NewOrderClient(baseURL, path string, httpClient *http.Client) *OrderClient {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &OrderClient{baseURL: baseURL, path: path, http: httpClient}
}

// Create posts the payload and returns the created order.
func (c *OrderClient) Create(ctx context.Context, p checkout.Payload) (*checkout.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.create",
		trace.WithAttributes(
			attribute.String("orders.path", c.path),
			attribute.Int("orders.lines", len(p.Items)),
		))
	defer span.End()

	var order checkout.Order
	if err := postJSON(ctx, c.http, joinURL(c.baseURL, c.path), p, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Ensure interface compliance at compile time.
var _ checkout.Creator = (*OrderClient)(nil)
