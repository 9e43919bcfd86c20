package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/scolara/scolara-auth/internal/notification"
)

// Service implements credential registration and verification for all three
// roles. Token issuance is the caller's concern.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService creates an account service. The notifier may be nil.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Register validates the payload against the role's schema, hashes the
// password and persists a new record. The store's unique index on email is the
// final arbiter for duplicates; the pre-insert lookup only gives a friendlier
// fast path.
func (s *Service) Register(ctx context.Context, role Role, in RegisterInput) (Account, error) {
	birth, verr := validateRegister(role, in)
	if verr != nil {
		return Account{}, verr
	}

	if _, err := s.repo.FindByEmail(ctx, role, in.Email); err == nil {
		return Account{}, emailTakenValidation()
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	acct := Account{
		ID:           uuid.NewString(),
		Role:         role,
		LastName:     in.LastName,
		FirstName:    in.FirstName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		BirthDate:    birth,
		Gender:       in.Gender,
		CreatedAt:    time.Now().UTC(),
	}

	switch role {
	case RoleStudent:
		acct.ClassLevel = in.ClassLevel
	case RoleTeacher:
		acct.EducationLevel = in.EducationLevel
		acct.DiplomaPhoto = in.DiplomaPhoto
		acct.Subject = in.Subject
		acct.ProfilePhoto = in.ProfilePhoto
		acct.Description = in.Description
		// New teachers are always inactive until approved, whatever the
		// payload claimed.
		inactive := false
		acct.Active = &inactive
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Account{}, emailTakenValidation()
		}
		return Account{}, err
	}

	if s.notifier != nil {
		// Best effort only; registration already succeeded.
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindAccountRegistered,
			Destination: acct.Email,
			Body:        string(role) + " account created",
		})
	}

	return acct, nil
}

// Login verifies the credential against the stored hash. Unknown email and
// wrong password are deliberately indistinguishable.
func (s *Service) Login(ctx context.Context, role Role, email, password string) (Account, error) {
	if verr := validateLogin(email, password); verr != nil {
		return Account{}, verr
	}

	acct, err := s.repo.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrBadCredentials
		}
		return Account{}, err
	}

	if bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)) != nil {
		return Account{}, ErrBadCredentials
	}

	return acct, nil
}

// Get fetches an identity record by role and id.
func (s *Service) Get(ctx context.Context, role Role, id string) (Account, error) {
	return s.repo.FindByID(ctx, role, id)
}
