package access

// Roles an identity can hold. Exactly one role per identity.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleBuyer   = "buyer"
)

// Approval statuses for an account. Role and status are independent:
// a manager stays "pending" until an admin approves the account.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusSuspended = "suspended"
)

// LoginPath is where unauthenticated requests are pointed.
const LoginPath = "/login"

// Capability is what a protected subtree requires from the caller.
type Capability int

const (
	CapAuthenticated Capability = iota
	CapAdmin
	CapManager
)

// Identity is everything a guard may look at. The resolution flags
// mirror the asynchronous identity/role lookup on the client side:
// while either is set, no access decision is made.
type Identity struct {
	Email       string
	Role        string
	Status      string
	AuthLoading bool
	RoleLoading bool
}

type Kind int

const (
	Loading Kind = iota
	Redirect
	Forbidden
	PendingApproval
	Allow
)

// Decision is the tagged outcome of a guard evaluation. For Redirect,
// Target is the login entry point and From the originally requested
// path so the caller can return there after signing in.
type Decision struct {
	Kind   Kind
	Target string
	From   string
}

// Evaluate decides whether the identity satisfies the capability. It is
// a pure function: no side effects, same inputs same decision.
//
// Ordering matters and is deliberate: loading short-circuits everything
// (never flash a denial before role data arrives), and the manager
// capability checks the pending status before the role so an
// unapproved account sees the awaiting-approval notice rather than the
// generic forbidden view.
func Evaluate(id Identity, cap Capability, requestedPath string) Decision {
	if id.AuthLoading || id.RoleLoading {
		return Decision{Kind: Loading}
	}

	switch cap {
	case CapAuthenticated:
		if id.Email == "" {
			return Decision{Kind: Redirect, Target: LoginPath, From: requestedPath}
		}
		return Decision{Kind: Allow}
	case CapManager:
		if id.Status == StatusPending {
			return Decision{Kind: PendingApproval}
		}
		if id.Role != RoleManager {
			return Decision{Kind: Forbidden}
		}
		return Decision{Kind: Allow}
	case CapAdmin:
		if id.Role != RoleAdmin {
			return Decision{Kind: Forbidden}
		}
		return Decision{Kind: Allow}
	}

	return Decision{Kind: Forbidden}
}
