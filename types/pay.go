package types

// CheckoutResponse 托管收银台参数，code_url 给前端换二维码
type CheckoutResponse struct {
	OrderNo string `json:"order_no"`
	Amount  int64  `json:"amount"`
	CodeURL string `json:"code_url"`
}
