package identity

import (
	"context"
	"crypto/subtle"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// phonePattern is the Brazilian WhatsApp format the API accepts: country code
// 55, a two-digit area code and an eight-digit local number. Callers strip
// the extra mobile 9 before logging in.
var phonePattern = regexp.MustCompile(`^55\d{10}$`)

// Service manages account credentials and profile data.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates the phone format, resolves the account and checks
// the credential. It returns ErrInvalidPhoneFormat, ErrUserNotFound or
// ErrWrongPassword so callers can map each case to its own response.
func (s *Service) Authenticate(ctx context.Context, phone, password string) (User, error) {
	if !phonePattern.MatchString(phone) {
		return User{}, ErrInvalidPhoneFormat
	}

	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return User{}, err
	}

	if !passwordMatches(user.Password, password) {
		return User{}, ErrWrongPassword
	}

	return user, nil
}

// Profile returns the API-visible profile fields for an account.
func (s *Service) Profile(ctx context.Context, id int64) (Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Name:               user.Name,
		Phone:              user.Phone,
		Email:              user.Email,
		SubscriptionDue:    user.SubscriptionDue,
		SubscriptionActive: user.SubscriptionActive,
	}, nil
}

// UpdateInput carries an optional profile update. Empty strings mean "not supplied".
type UpdateInput struct {
	Email           string
	NewPassword     string
	CurrentPassword string
	Name            string
}

// UpdateProfile applies a partial profile update. Changing the password
// requires the current one; the name rides along only when email or password
// is also changing, which matches the observed API behaviour.
func (s *Service) UpdateProfile(ctx context.Context, id int64, input UpdateInput) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	currentOK := passwordMatches(user.Password, input.CurrentPassword)
	if input.NewPassword != "" && !currentOK {
		return ErrWrongPassword
	}

	var changes ProfileChanges
	if input.Email != "" {
		changes.Email = &input.Email
	}
	if input.NewPassword != "" && currentOK {
		changes.Password = &input.NewPassword
	}

	if changes.Email == nil && changes.Password == nil {
		return ErrNothingToUpdate
	}

	if input.Name != "" {
		changes.Name = &input.Name
	}

	return s.repo.UpdateProfile(ctx, id, changes)
}

// passwordMatches compares a supplied password against the stored credential.
// Stored values are plain text in the legacy dataset; rows migrated to bcrypt
// hashes are detected by prefix and compared accordingly.
func passwordMatches(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
