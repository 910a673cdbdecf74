package user

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/mstanvir/garment-track-backend/internal/access"
)

func newTestApp(seed []User, claims jwt.MapClaims) (*fiber.App, *Service) {
	service := NewService(NewInMemoryRepository(seed))
	h := NewHandler(service, "test-secret", time.Hour)

	app := fiber.New()
	h.RegisterPublicRoutes(app)
	if claims != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user", &jwt.Token{Claims: claims})
			return c.Next()
		})
	}
	h.RegisterProtectedRoutes(app)
	return app, service
}

func postJSON(t *testing.T, app *fiber.App, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	rec.Code = res.StatusCode
	_, _ = rec.Body.ReadFrom(res.Body)
	return rec
}

func TestRegister_DefaultsToPendingBuyer(t *testing.T) {
	app, _ := newTestApp(nil, nil)

	rec := postJSON(t, app, "POST", "/register", map[string]string{
		"email":    "new@buyer.com",
		"password": "secret123",
		"name":     "New Buyer",
	})
	if rec.Code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created User
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Role != access.RoleBuyer {
		t.Errorf("default role should be buyer, got %q", created.Role)
	}
	if created.Status != access.StatusPending {
		t.Errorf("default status should be pending, got %q", created.Status)
	}
	if created.Password != "" {
		t.Errorf("password leaked in response")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _ := newTestApp(nil, nil)

	payload := map[string]string{"email": "dup@x.com", "password": "pw123456", "name": "Dup"}
	if rec := postJSON(t, app, "POST", "/register", payload); rec.Code != fiber.StatusCreated {
		t.Fatalf("first register failed: %d", rec.Code)
	}
	if rec := postJSON(t, app, "POST", "/register", payload); rec.Code != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	app, service := newTestApp(nil, nil)
	if _, err := service.Register(User{Email: "b@x.com", Password: "right-pass", Name: "B"}); err != nil {
		t.Fatal(err)
	}

	rec := postJSON(t, app, "POST", "/login", map[string]string{"email": "b@x.com", "password": "wrong"})
	if rec.Code != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_IssuesRoleClaims(t *testing.T) {
	app, service := newTestApp(nil, nil)
	if _, err := service.Register(User{Email: "b@x.com", Password: "right-pass", Name: "B"}); err != nil {
		t.Fatal(err)
	}

	rec := postJSON(t, app, "POST", "/login", map[string]string{"email": "b@x.com", "password": "right-pass"})
	if rec.Code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	tok, err := jwt.Parse(body.Token, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["role"] != access.RoleBuyer || claims["status"] != access.StatusPending {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestChangeStatus_SuspendKeepsReason(t *testing.T) {
	adminClaims := jwt.MapClaims{"email": "a@x.com", "role": access.RoleAdmin, "status": access.StatusApproved}
	seed := []User{{ID: 7, Email: "m@x.com", Name: "M", Role: access.RoleManager, Status: access.StatusApproved}}
	app, service := newTestApp(seed, adminClaims)

	rec := postJSON(t, app, "PATCH", "/users/7/status", map[string]string{
		"status": access.StatusSuspended,
		"reason": "fraudulent listings",
	})
	if rec.Code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	u, err := service.GetByID(7)
	if err != nil {
		t.Fatal(err)
	}
	if u.Status != access.StatusSuspended {
		t.Errorf("status not updated: %q", u.Status)
	}
	if u.SuspensionReason == nil || *u.SuspensionReason != "fraudulent listings" {
		t.Errorf("suspension reason not kept: %v", u.SuspensionReason)
	}

	// re-approving clears the reason
	rec = postJSON(t, app, "PATCH", "/users/7/status", map[string]string{"status": access.StatusApproved})
	if rec.Code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	u, _ = service.GetByID(7)
	if u.SuspensionReason != nil {
		t.Errorf("reason should be cleared on approval")
	}
}

func TestAdminRoutes_RejectNonAdmin(t *testing.T) {
	buyerClaims := jwt.MapClaims{"email": "b@x.com", "role": access.RoleBuyer, "status": access.StatusApproved}
	app, _ := newTestApp(nil, buyerClaims)

	req := httptest.NewRequest("GET", "/users", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for buyer on admin route, got %d", res.StatusCode)
	}
}
