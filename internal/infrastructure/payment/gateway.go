package payment

import (
	"context"

	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/greenauction/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewGateway returns the KakaoPay client. Outside production a missing admin
// key yields an UnconfiguredGateway so the service can run without credentials.
func NewGateway(cfg *config.Config, logger *zap.Logger) (trade.PaymentGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Kakao.AdminKey == "" && !cfg.App.IsProduction() {
		logger.Warn("KakaoPay admin key not set, payments are disabled")
		return UnconfiguredGateway{}, nil
	}
	client, err := NewKakaoPayClient(cfg.Kakao, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// UnconfiguredGateway rejects every payment request with ErrGatewayNotConfigured
type UnconfiguredGateway struct{}

// Ready implements trade.PaymentGateway
func (UnconfiguredGateway) Ready(context.Context, *trade.PaymentReadyRequest) (*trade.PaymentReadyResult, error) {
	return nil, trade.ErrGatewayNotConfigured
}

// Approve implements trade.PaymentGateway
func (UnconfiguredGateway) Approve(context.Context, *trade.PaymentApproveRequest) (*trade.PaymentApproveResult, error) {
	return nil, trade.ErrGatewayNotConfigured
}
