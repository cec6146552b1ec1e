package models

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// CartResponse is the wire view of a session's cart, totals always derived
// from the lines at response time.
type CartResponse struct {
	SessionID    string         `json:"session_id"`
	Lines        []CartLineView `json:"lines"`
	TotalItems   int            `json:"total_items"`
	Subtotal     int64          `json:"subtotal"`
	ShippingCost int64          `json:"shipping_cost"`
	Total        int64          `json:"total"`
}

type CartLineView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}
