package access

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// User-facing denial messages, kept verbatim from the frontend views
// they replace.
const (
	MsgForbidden       = "You Are Forbidden to Access This Page"
	MsgPendingApproval = "Please wait for approve to give you access in manager role"
)

// IdentityFromCtx builds a resolved Identity from the JWT the auth
// middleware stored in c.Locals("user"). Missing or malformed claims
// yield a zero identity, which every capability rejects.
func IdentityFromCtx(c *fiber.Ctx) Identity {
	u := c.Locals("user")
	if u == nil {
		return Identity{}
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Identity{}
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}
	}

	var id Identity
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		id.Role = v
	}
	if v, ok := claims["status"].(string); ok {
		id.Status = v
	}
	return id
}

// Require returns a route middleware enforcing the capability. The
// Loading kind cannot occur here: server-side identities are always
// resolved by the time a handler runs.
func Require(cap Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, Evaluate(IdentityFromCtx(c), cap, c.Path()))
	}
}

// RequireAny allows the request through when any of the capabilities is
// satisfied; otherwise it answers with the first denial. Used for
// routes open to both managers and admins.
func RequireAny(caps ...Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := IdentityFromCtx(c)
		var first *Decision
		for _, cap := range caps {
			d := Evaluate(id, cap, c.Path())
			if d.Kind == Allow {
				return c.Next()
			}
			if first == nil {
				first = &d
			}
		}
		if first == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": MsgForbidden})
		}
		return deny(c, *first)
	}
}

func respond(c *fiber.Ctx, d Decision) error {
	if d.Kind == Allow {
		return c.Next()
	}
	return deny(c, d)
}

func deny(c *fiber.Ctx, d Decision) error {
	switch d.Kind {
	case Redirect:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "unauthorized",
			"login":   d.Target,
			"from":    d.From,
		})
	case PendingApproval:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": MsgPendingApproval})
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": MsgForbidden})
	}
}
