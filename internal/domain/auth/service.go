package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
)

const RoleOperator = "operator"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMFARequired        = errors.New("mfa code required")
	ErrMFAInvalid         = errors.New("invalid mfa code")
)

// UserContext is the authenticated caller attached to a request.
type UserContext struct {
	Email string
	Role  string
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Operator struct {
	Email        string
	PasswordHash string
	// TOTPSecret enables a second factor when set.
	TOTPSecret string
}

// Service authenticates the single payroll operator configured for the
// deployment.
type Service struct {
	operator Operator
	secret   string
	ttl      time.Duration
}

func NewService(operator Operator, secret string, ttl time.Duration) *Service {
	operator.Email = strings.ToLower(strings.TrimSpace(operator.Email))
	return &Service{operator: operator, secret: secret, ttl: ttl}
}

func (s *Service) Login(email, password, mfaCode string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	// bcrypt runs even when the email does not match.
	pwErr := CheckPassword(s.operator.PasswordHash, password)
	if s.operator.Email == "" || email != s.operator.Email || pwErr != nil {
		return Session{}, ErrInvalidCredentials
	}
	if s.operator.TOTPSecret != "" {
		if strings.TrimSpace(mfaCode) == "" {
			return Session{}, ErrMFARequired
		}
		if !totp.Validate(strings.TrimSpace(mfaCode), s.operator.TOTPSecret) {
			return Session{}, ErrMFAInvalid
		}
	}
	token, err := GenerateToken(s.secret, Claims{Email: email, Role: RoleOperator}, s.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: time.Now().Add(s.ttl)}, nil
}
