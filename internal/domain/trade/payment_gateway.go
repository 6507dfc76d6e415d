package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Payment gateway errors
var (
	ErrGatewayUnavailable     = errors.New("payment: gateway temporarily unavailable")
	ErrGatewayRequestFailed   = errors.New("payment: gateway request failed")
	ErrGatewayInvalidResponse = errors.New("payment: invalid gateway response")
	ErrGatewayNotConfigured   = errors.New("payment: gateway not configured")

	ErrPaymentInvalidOrderID = errors.New("payment: invalid order ID")
	ErrPaymentInvalidAmount  = errors.New("payment: invalid payment amount")
	ErrPaymentMissingTID     = errors.New("payment: missing transaction id")
	ErrPaymentMissingPGToken = errors.New("payment: missing pg_token")
)

// PaymentReadyRequest starts a payment for one order
type PaymentReadyRequest struct {
	OrderID     uuid.UUID
	BuyerID     uuid.UUID
	ItemName    string
	Quantity    int
	TotalAmount int64
	ApprovalURL string
	FailURL     string
	CancelURL   string
}

// Validate checks the fields the gateway requires
func (r *PaymentReadyRequest) Validate() error {
	if r.OrderID == uuid.Nil {
		return ErrPaymentInvalidOrderID
	}
	if r.TotalAmount <= 0 || r.Quantity <= 0 {
		return ErrPaymentInvalidAmount
	}
	return nil
}

// PaymentReadyResult carries the gateway's transaction id and the page
// the buyer is redirected to
type PaymentReadyResult struct {
	TID         string
	RedirectURL string
}

// PaymentApproveRequest confirms a payment after the buyer returns
type PaymentApproveRequest struct {
	TID     string
	OrderID uuid.UUID
	BuyerID uuid.UUID
	PGToken string
}

// Validate checks the fields the gateway requires
func (r *PaymentApproveRequest) Validate() error {
	if r.TID == "" {
		return ErrPaymentMissingTID
	}
	if r.PGToken == "" {
		return ErrPaymentMissingPGToken
	}
	if r.OrderID == uuid.Nil {
		return ErrPaymentInvalidOrderID
	}
	return nil
}

// PaymentApproveResult is the gateway's approval record
type PaymentApproveResult struct {
	AID         string
	TID         string
	TotalAmount int64
}

// PaymentGateway is an external payment provider
type PaymentGateway interface {
	Ready(ctx context.Context, req *PaymentReadyRequest) (*PaymentReadyResult, error)
	Approve(ctx context.Context, req *PaymentApproveRequest) (*PaymentApproveResult, error)
}
