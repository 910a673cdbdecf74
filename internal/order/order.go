package order

import (
	"strconv"
	"strings"
)

// Order is one buyer purchase request against one product. Product
// name and unit price are snapshots taken at creation; later catalog
// edits never rewrite them.
type Order struct {
	ID              int     `json:"orderId"`
	TrackingID      string  `json:"trackingId"`
	UserEmail       string  `json:"userEmail"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	ProductID       int     `json:"productId"`
	ProductName     string  `json:"productName"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	OrderTotal      float64 `json:"orderTotal"`
	ContactNumber   string  `json:"contactNumber"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Notes           string  `json:"notes,omitempty"`
	PaymentStatus   string  `json:"paymentStatus"`
	Status          Status  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
}

// Matches reports whether the order matches a case-insensitive
// substring search over product name, buyer email, order id and
// tracking id. An empty query matches everything.
func (o Order) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(o.ProductName), q) ||
		strings.Contains(strings.ToLower(o.UserEmail), q) ||
		strings.Contains(strconv.Itoa(o.ID), q) ||
		strings.Contains(strings.ToLower(o.TrackingID), q)
}
