package auth

import (
	"context"

	"github.com/grana-app/grana/internal/config"
	"github.com/grana-app/grana/internal/identity"
)

// Service issues session tokens against validated identities.
type Service struct {
	cfg config.Config
	ids *identity.Service
}

// NewService builds the auth service.
func NewService(cfg config.Config, ids *identity.Service) *Service {
	return &Service{cfg: cfg, ids: ids}
}

// Session is the result of a successful login.
type Session struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}

// Login authenticates the phone/password pair and signs a token carrying the
// user id.
func (s *Service) Login(ctx context.Context, phone, password string) (Session, error) {
	user, err := s.ids.Authenticate(ctx, phone, password)
	if err != nil {
		return Session{}, err
	}

	token, err := Sign(user.ID, []byte(s.cfg.JWTSecret), s.cfg.TokenTTL)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, UserID: user.ID}, nil
}
