package auth

import (
	"fmt"
	"regexp"
	"strings"

	"vehicle-service-scheduler/internal/catalog"
	"vehicle-service-scheduler/internal/model"
)

type account struct {
	hash string
	role model.Role
}

// Credentials is the fixed account table. Passwords are kept only as
// bcrypt hashes; a match still requires the exact password.
type Credentials struct {
	accounts map[string]account
}

func NewCredentials(table map[string]catalog.Account) (*Credentials, error) {
	c := &Credentials{accounts: make(map[string]account, len(table))}
	for email, a := range table {
		hash, err := HashPassword(a.Password)
		if err != nil {
			return nil, fmt.Errorf("auth: hash %s: %w", email, err)
		}
		c.accounts[NormalizeEmail(email)] = account{hash: hash, role: a.Role}
	}
	return c, nil
}

// Check returns the session for a matching pair or ErrInvalidCredentials.
func (c *Credentials) Check(email, password string) (model.Session, error) {
	key := NormalizeEmail(email)
	a, ok := c.accounts[key]
	if !ok || !CheckPassword(a.hash, password) {
		return model.Session{}, model.ErrInvalidCredentials
	}
	return model.Session{Email: key, Role: a.role}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneRe = regexp.MustCompile(`^\+?[0-9\s-]{7,}$`)
)

type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// ValidateRegistration applies the sign-up form rules. Phone is optional.
func ValidateRegistration(r Registration) error {
	if len([]rune(strings.TrimSpace(r.Name))) < 2 {
		return model.Invalid("name", "at least 2 characters")
	}
	if !emailRe.MatchString(r.Email) {
		return model.Invalid("email", "not an email address")
	}
	if r.Phone != "" && !phoneRe.MatchString(r.Phone) {
		return model.Invalid("phone", "at least 7 digits")
	}
	if len(r.Password) < 6 {
		return model.Invalid("password", "at least 6 characters")
	}
	return nil
}
