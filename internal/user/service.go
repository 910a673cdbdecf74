package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mstanvir/garment-track-backend/internal/access"
)

// ServiceInterface lets other packages depend on the user service
// without the concrete type (handler tests stub it).
type ServiceInterface interface {
	List() []User
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	Register(u User) (User, error)
	Authenticate(email, password string) (User, error)
	ChangeRole(id int, role string) (User, error)
	ChangeStatus(id int, status string, reason string) (User, error)
}

type Service struct {
	repo Repository
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []User {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByEmail(email string) (User, error) {
	return s.repo.GetByEmail(email)
}

// Register stores a new account with the default role and approval
// status. Promotion to manager/admin and approval happen later through
// admin actions only.
func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)
	u.Role = access.RoleBuyer
	u.Status = access.StatusPending
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) ChangeRole(id int, role string) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	u.Role = role
	u.UpdatedAt = now()
	return s.repo.Update(id, u)
}

// ChangeStatus moves an account between pending/approved/suspended.
// The reason is kept only while the account is suspended.
func (s *Service) ChangeStatus(id int, status string, reason string) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	u.Status = status
	if status == access.StatusSuspended && reason != "" {
		u.SuspensionReason = &reason
	} else {
		u.SuspensionReason = nil
	}
	u.UpdatedAt = now()
	return s.repo.Update(id, u)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
