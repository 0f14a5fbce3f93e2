package models

// Order represents a placed order. The products list is ordered and may
// contain the same product more than once: each occurrence is one unit.
// Orders are created only through the placement workflow, never updated
// through the API afterwards.
type Order struct {
	OrderID         int64     `json:"orderId"`
	Customer        Customer  `json:"customer"`
	Products        []Product `json:"products"`
	OrderDate       Date      `json:"orderDate"`
	ShippingAddress string    `json:"shippingAddress"`
	TotalPrice      float64   `json:"totalPrice"`
	OrderStatus     string    `json:"orderStatus"`
}

// Validate returns one human-readable message per violated constraint.
// Customer and product references are resolved by the placement
// workflow, not here.
func (o Order) Validate() []string {
	var errs []string
	if o.ShippingAddress == "" {
		errs = append(errs, "Shipping address cannot be empty")
	}
	if o.OrderStatus == "" {
		errs = append(errs, "Order status cannot be empty")
	}
	return errs
}
