package gateway

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"orderdesk/internal/domain/catalog"
)

// CatalogClient loads the full catalog snapshot a cart session needs.
// The commerce API serves each directory unpaged; everything is fetched
// at session open, matching the dashboard's mount behavior.
type CatalogClient struct {
	baseURL string
	http    *http.Client
}

// NewCatalogClient creates a catalog client against the commerce API base URL.
func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &CatalogClient{baseURL: baseURL, http: httpClient}
}

// Load fetches products, counterparties, banks and statuses.
// Customers back sales carts; suppliers back purchase carts.
func (c *CatalogClient) Load(ctx context.Context, kind catalog.CounterpartyKind) (*catalog.Directory, error) {
	ctx, span := tracer.Start(ctx, "catalog.load",
		trace.WithAttributes(attribute.String("catalog.kind", string(kind))))
	defer span.End()

	var products []catalog.Product
	if err := getJSON(ctx, c.http, joinURL(c.baseURL, "/api/products"), &products); err != nil {
		return nil, err
	}

	counterpartyPath := "/api/customers"
	if kind == catalog.KindSupplier {
		counterpartyPath = "/api/suppliers"
	}
	var counterparties []catalog.Counterparty
	if err := getJSON(ctx, c.http, joinURL(c.baseURL, counterpartyPath), &counterparties); err != nil {
		return nil, err
	}

	var banks []catalog.Bank
	if err := getJSON(ctx, c.http, joinURL(c.baseURL, "/api/banks"), &banks); err != nil {
		return nil, err
	}

	var statuses []catalog.Status
	if err := getJSON(ctx, c.http, joinURL(c.baseURL, "/api/statuses"), &statuses); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("catalog.products", len(products)),
		attribute.Int("catalog.counterparties", len(counterparties)),
	)

	return catalog.NewDirectory(kind, products, counterparties, banks, statuses), nil
}

// Ensure interface compliance at compile time.
var _ catalog.Source = (*CatalogClient)(nil)
