package payment

// kakaoReadyResponse is the body of a successful /v1/payment/ready call
type kakaoReadyResponse struct {
	TID                   string `json:"tid"`
	NextRedirectPCURL     string `json:"next_redirect_pc_url"`
	NextRedirectMobileURL string `json:"next_redirect_mobile_url,omitempty"`
	CreatedAt             string `json:"created_at,omitempty"`
}

// kakaoApproveResponse is the body of a successful /v1/payment/approve call
type kakaoApproveResponse struct {
	AID            string `json:"aid"`
	TID            string `json:"tid"`
	CID            string `json:"cid"`
	PartnerOrderID string `json:"partner_order_id"`
	PartnerUserID  string `json:"partner_user_id"`
	PaymentMethod  string `json:"payment_method_type"`
	ItemName       string `json:"item_name"`
	Quantity       int    `json:"quantity"`
	Amount         struct {
		Total    int64 `json:"total"`
		TaxFree  int64 `json:"tax_free"`
		VAT      int64 `json:"vat"`
		Discount int64 `json:"discount"`
	} `json:"amount"`
	ApprovedAt string `json:"approved_at"`
}

// kakaoErrorResponse is returned with 4xx/5xx statuses
type kakaoErrorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
