package order

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/mstanvir/garment-track-backend/internal/access"
	"github.com/mstanvir/garment-track-backend/internal/product"
)

// fixed catalog used by the order flow tests: min 10, available 50,
// price 5.00
type stubProducts struct{}

func (stubProducts) List() []product.Product     { return nil }
func (stubProducts) ListHome() []product.Product { return nil }
func (stubProducts) GetByID(id int) (product.Product, error) {
	if id != 1 {
		return product.Product{}, product.ErrNotFound
	}
	return product.Product{
		ID: 1, Name: "Oxford Shirt", Category: "Shirt", Price: 5.00,
		AvailableQuantity: 50, MinimumOrderQuantity: 10,
		PaymentOption: product.PaymentCOD,
	}, nil
}
func (stubProducts) Create(p product.Product) (product.Product, error)         { return p, nil }
func (stubProducts) Update(id int, p product.Product) (product.Product, error) { return p, nil }
func (stubProducts) Delete(id int) error                                       { return nil }

var _ product.ServiceInterface = stubProducts{}

func claimsFor(email, role string) jwt.MapClaims {
	return jwt.MapClaims{"email": email, "role": role, "status": access.StatusApproved}
}

func newTestApp(seed []Order, claims jwt.MapClaims) (*fiber.App, *Service) {
	service := NewService(NewInMemoryRepository(seed), nil, nil)
	h := NewHandler(service, stubProducts{})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: claims})
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app, service
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(res.Body)
	return res.StatusCode, raw
}

func TestCreateOrder_SnapshotAndAck(t *testing.T) {
	app, service := newTestApp(nil, claimsFor("b@x.com", access.RoleBuyer))

	code, raw := doJSON(t, app, "POST", "/orders", map[string]any{
		"productId":       1,
		"firstName":       "Ayesha",
		"lastName":        "Rahman",
		"quantity":        20,
		"contactNumber":   "0171",
		"deliveryAddress": "12 Mirpur Rd",
	})
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, raw)
	}

	var ack struct {
		InsertedID int   `json:"insertedId"`
		Order      Order `json:"order"`
	}
	if err := json.Unmarshal(raw, &ack); err != nil {
		t.Fatal(err)
	}
	if ack.InsertedID == 0 {
		t.Fatal("acknowledgment missing insertedId")
	}

	o, err := service.GetByID(ack.InsertedID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != StatusPending {
		t.Errorf("orders must start pending, got %q", o.Status)
	}
	if o.ProductName != "Oxford Shirt" || o.Price != 5.00 {
		t.Errorf("product snapshot missing: %+v", o)
	}
	if o.OrderTotal != 100.00 {
		t.Errorf("total should be quantity x unit price = 100.00, got %v", o.OrderTotal)
	}
	if o.TrackingID == "" {
		t.Error("tracking id not assigned")
	}
	if o.PaymentStatus != "COD" {
		t.Errorf("COD product should yield COD payment status, got %q", o.PaymentStatus)
	}
	if o.UserEmail != "b@x.com" {
		t.Errorf("buyer email not taken from identity: %q", o.UserEmail)
	}
}

func TestCreateOrder_QuantityBounds(t *testing.T) {
	cases := []struct {
		quantity int
		wantMsg  string
	}{
		{0, "Enter a valid quantity"},
		{5, "Minimum order is 10"},
		{60, "Cannot order more than available (50)"},
	}
	for _, tc := range cases {
		app, service := newTestApp(nil, claimsFor("b@x.com", access.RoleBuyer))
		code, raw := doJSON(t, app, "POST", "/orders", map[string]any{
			"productId":       1,
			"firstName":       "A",
			"lastName":        "B",
			"quantity":        tc.quantity,
			"contactNumber":   "0171",
			"deliveryAddress": "addr",
		})
		if code != fiber.StatusBadRequest {
			t.Fatalf("quantity %d: expected 400, got %d", tc.quantity, code)
		}
		if !strings.Contains(string(raw), tc.wantMsg) {
			t.Fatalf("quantity %d: expected message %q in %s", tc.quantity, tc.wantMsg, raw)
		}
		if len(service.List()) != 0 {
			t.Fatalf("quantity %d: order stored despite failed validation", tc.quantity)
		}
	}
}

func TestCancelOrder_PendingOnly(t *testing.T) {
	seed := []Order{
		{ID: 1, UserEmail: "b@x.com", TrackingID: "t-1", Status: StatusPending},
		{ID: 2, UserEmail: "b@x.com", TrackingID: "t-2", Status: StatusApproved},
	}
	app, service := newTestApp(seed, claimsFor("b@x.com", access.RoleBuyer))

	// pending order cancels fine
	code, raw := doJSON(t, app, "PATCH", "/orders/1/status", map[string]string{"status": "cancelled"})
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", code, raw)
	}
	var ack struct {
		ModifiedCount int `json:"modifiedCount"`
	}
	json.Unmarshal(raw, &ack)
	if ack.ModifiedCount != 1 {
		t.Fatalf("expected modifiedCount 1, got %d", ack.ModifiedCount)
	}

	// approved order is refused with the exact message and stays put
	code, raw = doJSON(t, app, "PATCH", "/orders/2/status", map[string]string{"status": "cancelled"})
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", code, raw)
	}
	if !strings.Contains(string(raw), MsgOnlyPendingCancellable) {
		t.Fatalf("expected refusal message, got %s", raw)
	}
	o, _ := service.GetByID(2)
	if o.Status != StatusApproved {
		t.Fatalf("refused cancellation mutated the order: %q", o.Status)
	}
}

func TestCancelOrder_OtherBuyersOrder(t *testing.T) {
	seed := []Order{{ID: 1, UserEmail: "other@x.com", Status: StatusPending}}
	app, service := newTestApp(seed, claimsFor("b@x.com", access.RoleBuyer))

	code, _ := doJSON(t, app, "PATCH", "/orders/1/status", map[string]string{"status": "cancelled"})
	if code != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	o, _ := service.GetByID(1)
	if o.Status != StatusPending {
		t.Fatalf("foreign cancellation mutated the order")
	}
}

func TestUpdateStatus_AdminOverride(t *testing.T) {
	seed := []Order{{ID: 1, UserEmail: "b@x.com", Status: StatusDelivered}}
	app, service := newTestApp(seed, claimsFor("a@x.com", access.RoleAdmin))

	// backwards out of a terminal state: allowed for admin only
	code, raw := doJSON(t, app, "PATCH", "/orders/1/status", map[string]string{"status": "pending"})
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for admin override, got %d: %s", code, raw)
	}
	o, _ := service.GetByID(1)
	if o.Status != StatusPending {
		t.Fatalf("override not applied: %q", o.Status)
	}
}

func TestUpdateStatus_ManagerHeldToGraph(t *testing.T) {
	seed := []Order{{ID: 1, UserEmail: "b@x.com", Status: StatusPending}}
	app, service := newTestApp(seed, claimsFor("m@x.com", access.RoleManager))

	code, _ := doJSON(t, app, "PATCH", "/orders/1/status", map[string]string{"status": "shipped"})
	if code != fiber.StatusConflict {
		t.Fatalf("expected 409 for illegal manager transition, got %d", code)
	}
	o, _ := service.GetByID(1)
	if o.Status != StatusPending {
		t.Fatalf("failed transition mutated the order: %q", o.Status)
	}

	code, _ = doJSON(t, app, "PATCH", "/orders/1/status", map[string]string{"status": "approved"})
	if code != fiber.StatusOK {
		t.Fatalf("expected 200 for legal manager transition, got %d", code)
	}
}

func TestGetOrders_BuyerScopeForced(t *testing.T) {
	seed := []Order{
		{ID: 1, UserEmail: "b@x.com", ProductName: "Oxford Shirt", Status: StatusPending},
		{ID: 2, UserEmail: "other@x.com", ProductName: "Cargo Pant", Status: StatusPending},
	}
	app, _ := newTestApp(seed, claimsFor("b@x.com", access.RoleBuyer))

	// a buyer asking for someone else's orders still only gets their own
	code, raw := doJSON(t, app, "GET", "/orders?email=other@x.com", nil)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var orders []Order
	json.Unmarshal(raw, &orders)
	if len(orders) != 1 || orders[0].UserEmail != "b@x.com" {
		t.Fatalf("buyer scope not forced: %+v", orders)
	}
}

func TestGetOrders_SearchByTrackingID(t *testing.T) {
	seed := []Order{
		{ID: 1, UserEmail: "b@x.com", ProductName: "Oxford Shirt", TrackingID: "trk-abc", Status: StatusPending},
		{ID: 2, UserEmail: "c@x.com", ProductName: "Cargo Pant", TrackingID: "trk-xyz", Status: StatusShipped},
	}
	app, _ := newTestApp(seed, claimsFor("a@x.com", access.RoleAdmin))

	code, raw := doJSON(t, app, "GET", "/orders?q=trk-xyz", nil)
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var orders []Order
	json.Unmarshal(raw, &orders)
	if len(orders) != 1 || orders[0].ID != 2 {
		t.Fatalf("tracking id search failed: %+v", orders)
	}

	// status filter stacks on top of search
	code, raw = doJSON(t, app, "GET", "/orders?status=shipped", nil)
	json.Unmarshal(raw, &orders)
	if len(orders) != 1 || orders[0].Status != StatusShipped {
		t.Fatalf("status filter failed: %+v", orders)
	}
}
