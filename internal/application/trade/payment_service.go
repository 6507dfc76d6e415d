package trade

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/greenauction/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Messages shown when the buyer returns from the payment page
const (
	PaymentSuccessMessage   = "Payment completed successfully."
	PaymentFailMessage      = "Payment failed. Please try again."
	PaymentCancelMessage    = "Payment was cancelled."
	paymentCallbackBasePath = "/api/v1/payment"
)

// ErrPaymentGateway is returned when the payment provider cannot be reached
// or rejects a request
var ErrPaymentGateway = shared.NewDomainError("PAYMENT_GATEWAY_ERROR", "Payment gateway request failed")

// PaymentService drives the KakaoPay ready/approve flow for an order
type PaymentService struct {
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	gateway        trade.PaymentGateway
	publicBaseURL  string
	eventPublisher shared.EventPublisher
	metrics        *telemetry.MarketMetrics
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService. publicBaseURL is the
// externally reachable origin the provider redirects buyers back to.
func NewPaymentService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	gateway trade.PaymentGateway,
	publicBaseURL string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		gateway:       gateway,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetMetrics sets the marketplace metrics recorder
func (s *PaymentService) SetMetrics(metrics *telemetry.MarketMetrics) {
	s.metrics = metrics
}

// Ready starts a payment for the buyer's order and stores the provider's
// transaction id. On gateway failure the order is left untouched.
func (s *PaymentService) Ready(ctx context.Context, buyerID, orderID uuid.UUID) (*PaymentReadyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "ready",
		telemetry.AttrUserID, buyerID, telemetry.AttrOrderID, orderID)
	defer span.End()

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.BelongsTo(buyerID) {
		return nil, shared.ErrNotFound
	}
	if order.IsCartLine() {
		return nil, shared.NewDomainError("INVALID_STATE", "Check out the cart before paying")
	}
	if order.Status == trade.OrderStatusPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is already paid")
	}

	product, err := s.productRepo.FindByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}

	req := &trade.PaymentReadyRequest{
		OrderID:     order.ID,
		BuyerID:     order.BuyerID,
		ItemName:    product.Name,
		Quantity:    order.Quantity,
		TotalAmount: order.TotalPrice.Round(0).IntPart(),
		ApprovalURL: s.callbackURL("success", order.ID),
		FailURL:     s.callbackURL("fail", order.ID),
		CancelURL:   s.callbackURL("cancel", order.ID),
	}
	if err := req.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order amount cannot be paid")
	}

	result, err := s.gateway.Ready(ctx, req)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordPayment(ctx, "gateway_error")
		s.logger.Error("Payment ready request failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return nil, gatewayError(err)
	}

	if err := order.AttachPaymentTID(result.TID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordPayment(ctx, "ready")
	s.logger.Info("Payment ready",
		zap.String("order_id", order.ID.String()),
		zap.String("tid", result.TID),
		zap.Int64("amount", req.TotalAmount))

	return &PaymentReadyResponse{
		OrderID:     order.ID,
		TID:         result.TID,
		RedirectURL: result.RedirectURL,
	}, nil
}

// Approve confirms the payment after the buyer returns with a pg_token.
// An order that is already paid is reported as paid again.
func (s *PaymentService) Approve(ctx context.Context, orderID uuid.UUID, pgToken string) (*PaymentStatusResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "approve", telemetry.AttrOrderID, orderID)
	defer span.End()

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == trade.OrderStatusPaid {
		return paymentStatus(order, PaymentSuccessMessage), nil
	}
	if order.KakaoTID == nil || order.Status != trade.OrderStatusOrdered {
		return nil, shared.NewDomainError("INVALID_STATE", "Order has no pending payment")
	}

	req := &trade.PaymentApproveRequest{
		TID:     *order.KakaoTID,
		OrderID: order.ID,
		BuyerID: order.BuyerID,
		PGToken: pgToken,
	}
	if err := req.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "pg_token is required")
	}

	if _, err := s.gateway.Approve(ctx, req); err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordPayment(ctx, "gateway_error")
		s.logger.Error("Payment approve request failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return nil, gatewayError(err)
	}

	if err := order.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	publishEvents(ctx, s.eventPublisher, s.logger, order)
	s.metrics.RecordPayment(ctx, trade.OrderStatusPaid.String())

	s.logger.Info("Payment approved", zap.String("order_id", order.ID.String()))

	return paymentStatus(order, PaymentSuccessMessage), nil
}

// Fail records a failed payment. Without an order id only the message is returned.
func (s *PaymentService) Fail(ctx context.Context, orderID *uuid.UUID) (*PaymentStatusResponse, error) {
	return s.closePayment(ctx, orderID, trade.OrderStatusPaymentFailed, PaymentFailMessage, (*trade.Order).MarkPaymentFailed)
}

// Cancel records a cancelled payment. Without an order id only the message is returned.
func (s *PaymentService) Cancel(ctx context.Context, orderID *uuid.UUID) (*PaymentStatusResponse, error) {
	return s.closePayment(ctx, orderID, trade.OrderStatusPaymentCancelled, PaymentCancelMessage, (*trade.Order).MarkPaymentCancelled)
}

func (s *PaymentService) closePayment(
	ctx context.Context,
	orderID *uuid.UUID,
	status trade.OrderStatus,
	message string,
	mark func(*trade.Order) error,
) (*PaymentStatusResponse, error) {
	if orderID == nil {
		return &PaymentStatusResponse{Status: status.String(), Message: message}, nil
	}

	order, err := s.orderRepo.FindByID(ctx, *orderID)
	if err != nil {
		return nil, err
	}
	if err := mark(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(ctx, status.String())
	s.logger.Info("Payment closed",
		zap.String("order_id", order.ID.String()),
		zap.String("status", status.String()))

	return paymentStatus(order, message), nil
}

func (s *PaymentService) callbackURL(outcome string, orderID uuid.UUID) string {
	query := url.Values{"order_id": []string{orderID.String()}}
	return fmt.Sprintf("%s%s/%s?%s", s.publicBaseURL, paymentCallbackBasePath, outcome, query.Encode())
}

func paymentStatus(order *trade.Order, message string) *PaymentStatusResponse {
	id := order.ID
	return &PaymentStatusResponse{
		OrderID: &id,
		Status:  order.Status.String(),
		Message: message,
	}
}

func gatewayError(err error) error {
	switch {
	case errors.Is(err, trade.ErrGatewayNotConfigured):
		return shared.NewDomainError(ErrPaymentGateway.Code, "Payment gateway is not configured")
	case errors.Is(err, trade.ErrGatewayUnavailable):
		return shared.NewDomainError(ErrPaymentGateway.Code, "Payment gateway is unavailable")
	}
	return ErrPaymentGateway
}
