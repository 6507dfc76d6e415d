package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/greenauction/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	kakaoReadyPath   = "/v1/payment/ready"
	kakaoApprovePath = "/v1/payment/approve"
	maxResponseBytes = 1 << 20
)

// ErrMissingAdminKey is returned when the client is built without credentials
var ErrMissingAdminKey = errors.New("kakaopay: admin key is required")

// KakaoPayClient implements trade.PaymentGateway against the KakaoPay REST API
type KakaoPayClient struct {
	baseURL       string
	adminKey      string
	cid           string
	vatAmount     int64
	taxFreeAmount int64
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewKakaoPayClient creates a client from config
func NewKakaoPayClient(cfg config.KakaoPayConfig, logger *zap.Logger) (*KakaoPayClient, error) {
	if cfg.AdminKey == "" {
		return nil, ErrMissingAdminKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &KakaoPayClient{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		adminKey:      cfg.AdminKey,
		cid:           cfg.CID,
		vatAmount:     cfg.VATAmount,
		taxFreeAmount: cfg.TaxFreeAmount,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger,
	}, nil
}

// Ready registers a payment and returns the transaction id and the
// redirect URL for the buyer
func (c *KakaoPayClient) Ready(ctx context.Context, req *trade.PaymentReadyRequest) (*trade.PaymentReadyResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("cid", c.cid)
	form.Set("partner_order_id", req.OrderID.String())
	form.Set("partner_user_id", req.BuyerID.String())
	form.Set("item_name", req.ItemName)
	form.Set("quantity", strconv.Itoa(req.Quantity))
	form.Set("total_amount", strconv.FormatInt(req.TotalAmount, 10))
	form.Set("vat_amount", strconv.FormatInt(c.vatAmount, 10))
	form.Set("tax_free_amount", strconv.FormatInt(c.taxFreeAmount, 10))
	form.Set("approval_url", req.ApprovalURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)

	var resp kakaoReadyResponse
	if err := c.post(ctx, kakaoReadyPath, form, &resp); err != nil {
		return nil, err
	}
	if resp.TID == "" || resp.NextRedirectPCURL == "" {
		return nil, fmt.Errorf("%w: ready response without tid or redirect url", trade.ErrGatewayInvalidResponse)
	}

	c.logger.Info("KakaoPay payment ready",
		zap.String("order_id", req.OrderID.String()),
		zap.String("tid", resp.TID),
	)
	return &trade.PaymentReadyResult{
		TID:         resp.TID,
		RedirectURL: resp.NextRedirectPCURL,
	}, nil
}

// Approve confirms a payment with the pg_token KakaoPay appended to the approval URL
func (c *KakaoPayClient) Approve(ctx context.Context, req *trade.PaymentApproveRequest) (*trade.PaymentApproveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("cid", c.cid)
	form.Set("tid", req.TID)
	form.Set("partner_order_id", req.OrderID.String())
	form.Set("partner_user_id", req.BuyerID.String())
	form.Set("pg_token", req.PGToken)

	var resp kakaoApproveResponse
	if err := c.post(ctx, kakaoApprovePath, form, &resp); err != nil {
		return nil, err
	}
	if resp.AID == "" {
		return nil, fmt.Errorf("%w: approve response without aid", trade.ErrGatewayInvalidResponse)
	}

	c.logger.Info("KakaoPay payment approved",
		zap.String("order_id", req.OrderID.String()),
		zap.String("tid", resp.TID),
		zap.String("aid", resp.AID),
	)
	return &trade.PaymentApproveResult{
		AID:         resp.AID,
		TID:         resp.TID,
		TotalAmount: resp.Amount.Total,
	}, nil
}

func (c *KakaoPayClient) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("kakaopay: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.adminKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", trade.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("kakaopay: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var kerr kakaoErrorResponse
		if jsonErr := json.Unmarshal(body, &kerr); jsonErr == nil && kerr.Msg != "" {
			return fmt.Errorf("%w: HTTP %d: %s (code %d)", trade.ErrGatewayRequestFailed, resp.StatusCode, kerr.Msg, kerr.Code)
		}
		return fmt.Errorf("%w: HTTP %d", trade.ErrGatewayRequestFailed, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", trade.ErrGatewayInvalidResponse, err)
	}
	return nil
}

var _ trade.PaymentGateway = (*KakaoPayClient)(nil)
