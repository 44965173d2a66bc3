// Package checkout assembles a finished cart into the external create
// payload and drives the submission attempt.
package checkout

import (
	"context"
	"time"

	"orderdesk/internal/core/apperror"
	"orderdesk/internal/core/types"
	"orderdesk/internal/domain/cart"
	"orderdesk/internal/domain/catalog"
	"orderdesk/pkg/logger"
)

// PayloadItem is one order line in the external shape.
type PayloadItem struct {
	ProductID int64       `json:"productId"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
}

// Payload is the create-order request the external service accepts.
type Payload struct {
	CounterpartyID int64         `json:"counterpartyId"`
	BankID         int64         `json:"bankId"`
	StatusID       int64         `json:"statusId"`
	Items          []PayloadItem `json:"items"`
	OccurredAt     time.Time     `json:"occurredAt"`
}

// Order is the external service's view of the created order.
type Order struct {
	ID     int64  `json:"id"`
	Number string `json:"number,omitempty"`
}

// Creator submits an assembled payload to the external order-creation
// collaborator. Implementations return an upstream apperror whose message
// carries the collaborator's detail verbatim.
type Creator interface {
	Create(ctx context.Context, p Payload) (*Order, error)
}

// Service finalizes cart sessions. One creator per cart mode, since sales
// and purchases go to different endpoints of the commerce API.
type Service struct {
	creators map[cart.Mode]Creator
}

// NewService creates a checkout service.
func NewService(creators map[cart.Mode]Creator) *Service {
	return &Service{creators: creators}
}

// Assemble validates completeness, maps the status name to its external
// identifier and builds the create payload. Pure; no network involved.
func Assemble(items []cart.LineItem, header cart.Header, dir *catalog.Directory) (Payload, error) {
	missing := missingPieces(items, header)
	if len(missing) > 0 {
		return Payload{}, apperror.NewCartIncomplete(missing)
	}

	statusID, ok := dir.StatusID(*header.Status)
	if !ok {
		return Payload{}, apperror.NewStatusMapping(*header.Status)
	}

	payloadItems := make([]PayloadItem, len(items))
	for i, item := range items {
		payloadItems[i] = PayloadItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return Payload{
		CounterpartyID: *header.CounterpartyID,
		BankID:         *header.BankID,
		StatusID:       statusID,
		Items:          payloadItems,
		OccurredAt:     header.OccurredAt,
	}, nil
}

func missingPieces(items []cart.LineItem, header cart.Header) []string {
	var missing []string
	if len(items) == 0 {
		missing = append(missing, "items")
	}
	if header.CounterpartyID == nil {
		missing = append(missing, "counterparty")
	}
	if header.BankID == nil {
		missing = append(missing, "bank")
	}
	if header.Status == nil {
		missing = append(missing, "status")
	}
	return missing
}

// Finalize runs one submission attempt for the session:
// Idle -> Submitting -> {Success: cart reset | Failed: cart untouched}.
// Assembly errors abort before any network call. No automatic retry; a
// failed attempt leaves the cart intact so the user can correct and
// re-trigger, and deduplication of a manual retry is the collaborator's
// concern, not this layer's.
func (s *Service) Finalize(ctx context.Context, sess *cart.Session) (*Order, error) {
	creator, ok := s.creators[sess.Mode]
	if !ok {
		return nil, apperror.NewInternal(nil).WithDetail("missing_creator_for_mode", string(sess.Mode))
	}

	if err := sess.BeginSubmit(); err != nil {
		return nil, err
	}
	defer sess.EndSubmit()

	items, header := sess.Snapshot()
	payload, err := Assemble(items, header, sess.Directory)
	if err != nil {
		return nil, err
	}

	order, err := creator.Create(ctx, payload)
	if err != nil {
		logger.Warn(ctx, "order submission failed",
			"mode", string(sess.Mode),
			"lines", len(payload.Items),
			"error", err)
		return nil, err
	}

	sess.ResetAfterSubmit()

	logger.Info(ctx, "order created",
		"mode", string(sess.Mode),
		"order_id", order.ID,
		"lines", len(payload.Items))

	return order, nil
}
