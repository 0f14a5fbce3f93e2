package models

// Product represents a sellable product with an available stock count.
type Product struct {
	ProductID       int64   `json:"productId"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	QuantityInStock int     `json:"quantityInStock"`
}

// Validate returns one human-readable message per violated constraint.
func (p Product) Validate() []string {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "Name is required.")
	}
	if p.Price < 0 {
		errs = append(errs, "Price must be positive.")
	}
	if p.QuantityInStock < 0 {
		errs = append(errs, "Quantity in stock must be positive.")
	}
	return errs
}
