package user

import (
	"context"
	"net"
	"strings"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	"github.com/BruksfildServices01/studiobook/internal/auth"
	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/validators"
)

var (
	ErrUserNotFound       = httperr.ErrNotFound("user_not_found", "User not found")
	ErrEmailInUse         = httperr.ErrConflict("email_in_use", "Email already in use")
	ErrInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials", "Invalid email or password")
	ErrInvalidEmail       = httperr.ErrInvalidState("invalid_email", "Invalid email address")
	ErrInvalidEmailDomain = httperr.ErrInvalidState("invalid_email_domain", "Email domain does not accept mail")
	ErrInvalidRole        = httperr.ErrInvalidState("invalid_role", "Role must be CLIENT or OWNER")
	ErrWeakPassword       = httperr.ErrInvalidState("weak_password", "Password must have at least 6 characters")
	ErrNotSelf            = httperr.ErrForbidden("forbidden", "You can only change your own profile")
	ErrNotManager         = httperr.ErrForbidden("forbidden", "Only managers can create barbers")
	ErrNoBusiness         = httperr.ErrInvalidState("no_business", "You must belong to a business to create barbers")
)

const minPasswordLen = 6

type Repository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, id string, fields map[string]any) (*models.User, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.User, error)
}

type ImageStore interface {
	Save(ctx context.Context, folder string, data []byte) (string, error)
	Delete(ctx context.Context, url string)
}

// Service holds account registration, login and profile maintenance.
type Service struct {
	repo   Repository
	images ImageStore
	audit  *audit.Dispatcher

	checkDomain bool
	resolver    validators.Resolver
}

func NewService(
	repo Repository,
	images ImageStore,
	audit *audit.Dispatcher,
	checkDomain bool,
) *Service {
	return &Service{
		repo:        repo,
		images:      images,
		audit:       audit,
		checkDomain: checkDomain,
		resolver:    net.DefaultResolver,
	}
}

// ======================================================
// REGISTER / LOGIN
// ======================================================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
	CpfCnpj  *string
}

// Register creates a CLIENT (default) or OWNER account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleClient && role != models.RoleOwner {
		return nil, ErrInvalidRole
	}

	u, err := s.newUser(ctx, in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	u.CpfCnpj = in.CpfCnpj

	if err := s.create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ======================================================
// STAFF
// ======================================================

type BarberInput struct {
	Name     string
	Email    string
	Password string
}

// CreateBarber adds a barber to the caller's business.
func (s *Service) CreateBarber(ctx context.Context, actorID string, in BarberInput) (*models.User, error) {
	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.Role.CanManageStaff() {
		return nil, ErrNotManager
	}
	if actor.BusinessID == nil {
		return nil, ErrNoBusiness
	}

	u, err := s.newUser(ctx, in.Name, in.Email, in.Password, models.RoleBarber)
	if err != nil {
		return nil, err
	}
	businessID := *actor.BusinessID
	u.BusinessID = &businessID

	if err := s.create(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &actor.ID,
		Action:     "barber_created",
		Entity:     "user",
		EntityID:   &u.ID,
	})
	return u, nil
}

// ======================================================
// PROFILE
// ======================================================

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) ListByBusiness(ctx context.Context, businessID string) ([]models.User, error) {
	return s.repo.ListByBusiness(ctx, businessID)
}

type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	CpfCnpj  *string
}

func (s *Service) Update(ctx context.Context, actorID, id string, in UpdateInput) (*models.User, error) {
	if actorID != id {
		return nil, ErrNotSelf
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.CpfCnpj != nil {
		fields["cpf_cnpj"] = *in.CpfCnpj
	}
	if in.Email != nil {
		email := validators.NormalizeEmail(*in.Email)
		if !validators.IsEmailSyntaxValid(email) {
			return nil, ErrInvalidEmail
		}
		other, err := s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrEmailInUse
		}
		fields["email"] = email
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, ErrWeakPassword
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}

	u, err := s.repo.UpdateUser(ctx, id, fields)
	if err != nil {
		if httperr.IsUniqueViolation(err, "") {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UploadAvatar stores a new avatar and removes the previous one.
func (s *Service) UploadAvatar(ctx context.Context, actorID, id string, data []byte) (*models.User, error) {
	if actorID != id {
		return nil, ErrNotSelf
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, "avatars", data)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.UpdateUser(ctx, id, map[string]any{"avatar_image": url})
	if err != nil {
		s.images.Delete(ctx, url)
		return nil, err
	}
	if current.AvatarImage != nil {
		s.images.Delete(ctx, *current.AvatarImage)
	}
	return u, nil
}

// ======================================================
// HELPERS
// ======================================================

func (s *Service) newUser(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error) {
	email = validators.NormalizeEmail(email)
	if !validators.IsEmailSyntaxValid(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if s.checkDomain && !validators.IsEmailDomainValid(ctx, s.resolver, email) {
		return nil, ErrInvalidEmailDomain
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}, nil
}

func (s *Service) create(ctx context.Context, u *models.User) error {
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if httperr.IsUniqueViolation(err, "") {
			return ErrEmailInUse
		}
		return err
	}
	return nil
}
