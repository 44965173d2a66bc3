package dto

import "orderdesk/internal/domain/checkout"

// FinalizeResponse reports the order the external service created.
type FinalizeResponse struct {
	OrderID int64  `json:"orderId"`
	Number  string `json:"number,omitempty"`
}

// FromOrder maps a created order to its response shape.
func FromOrder(o *checkout.Order) FinalizeResponse {
	return FinalizeResponse{
		OrderID: o.ID,
		Number:  o.Number,
	}
}
