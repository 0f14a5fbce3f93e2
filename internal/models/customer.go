package models

import "regexp"

// Customer represents a registered customer.
// JSON field names match the REST contract.
type Customer struct {
	CustomerID    int64  `json:"customerId"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
}

// emailPattern accepts the usual local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate returns one human-readable message per violated constraint.
// An empty slice means the customer is valid.
func (c Customer) Validate() []string {
	var errs []string
	if c.FirstName == "" {
		errs = append(errs, "First name is required.")
	}
	if c.LastName == "" {
		errs = append(errs, "Last name is required.")
	}
	if !emailPattern.MatchString(c.Email) {
		errs = append(errs, "Invalid email format.")
	}
	if c.ContactNumber == "" {
		errs = append(errs, "Contact number is required.")
	}
	return errs
}
