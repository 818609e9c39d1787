// internal/domain/payment/dto.go
package payment

type WebhookRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	EventID   string `json:"event_id" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=succeeded failed"`
}

// StatusEvent is pushed to websocket subscribers when a payment settles.
type StatusEvent struct {
	Type      string `json:"type"`
	PaymentID string `json:"payment_id"`
	Status    Status `json:"status"`
	Product   string `json:"product"`
}
