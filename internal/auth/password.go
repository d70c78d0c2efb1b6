package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword indicates the presented password does not match.
var ErrInvalidPassword = errors.New("invalid password")

// PasswordGate checks the frontend access password against a bcrypt hash
// computed once at startup.
type PasswordGate struct {
	hash []byte
}

// NewPasswordGate hashes password. An empty password yields a gate that
// rejects everything.
func NewPasswordGate(password string) (*PasswordGate, error) {
	if password == "" {
		return &PasswordGate{}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &PasswordGate{hash: hash}, nil
}

// Check returns ErrInvalidPassword unless candidate matches.
func (g *PasswordGate) Check(candidate string) error {
	if g == nil || len(g.hash) == 0 || candidate == "" {
		return ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(candidate)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
