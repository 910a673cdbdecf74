package product

import "strings"

// Product is a garment catalog item. Price and name get snapshotted
// onto orders at order time, so edits here never rewrite order history.
type Product struct {
	ID                   int      `json:"productId"`
	Name                 string   `json:"name"`
	Category             string   `json:"category"`
	Price                float64  `json:"price"`
	AvailableQuantity    int      `json:"availableQuantity"`
	MinimumOrderQuantity int      `json:"minimumOrderQuantity"`
	PaymentOption        string   `json:"paymentOption"`
	Images               []string `json:"images"`
	DemoVideo            string   `json:"demoVideo,omitempty"`
	Description          string   `json:"description"`
	ShowOnHome           bool     `json:"showOnHome"`
	CreatedBy            string   `json:"createdBy"`
	CreatedAt            string   `json:"createdAt,omitempty"`
	UpdatedAt            string   `json:"updatedAt,omitempty"`
}

// AllowedCategories is the closed category set offered in the product
// forms.
var AllowedCategories = []string{
	"Shirt",
	"Pant",
	"Jacket",
	"Blazer",
	"Sportswear",
	"Kids Wear",
}

// PaymentGateway products create orders awaiting prepayment; everything
// else is cash on delivery.
const (
	PaymentCOD     = "Cash on Delivery"
	PaymentGateway = "PayFast"
)

var PaymentOptions = []string{PaymentCOD, PaymentGateway}

func ValidCategory(category string) bool {
	for _, c := range AllowedCategories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidPaymentOption(option string) bool {
	for _, o := range PaymentOptions {
		if o == option {
			return true
		}
	}
	return false
}

// Matches reports whether the product matches a case-insensitive
// substring search over name and category. An empty query matches
// everything.
func (p Product) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
