package service_password_auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/humanbelnik/oscarparty/internal/model"
)

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrNotConfigured    = errors.New("no password digests configured")
	ErrInvalidPassword  = errors.New("invalid password")
)

// Gate maps a shared password to an access level by comparing its SHA-256
// digest with the configured guest and public digests.
type Gate struct {
	guest  []byte
	public []byte
}

// New takes lower-case hex digests. Empty strings disable a tier.
func New(guestHash, publicHash string) *Gate {
	return &Gate{
		guest:  digest(guestHash),
		public: digest(publicHash),
	}
}

func digest(hexHash string) []byte {
	if hexHash == "" {
		return nil
	}
	return []byte(strings.ToLower(hexHash))
}

// Hash is the lower-case hex SHA-256 of the UTF-8 password.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Check is stateless; guest wins if both digests match.
func (g *Gate) Check(password string) (model.AccessLevel, error) {
	if password == "" {
		return model.AccessNone, ErrPasswordRequired
	}
	if g.guest == nil && g.public == nil {
		return model.AccessNone, ErrNotConfigured
	}

	h := []byte(Hash(password))
	if g.guest != nil && subtle.ConstantTimeCompare(h, g.guest) == 1 {
		return model.AccessGuest, nil
	}
	if g.public != nil && subtle.ConstantTimeCompare(h, g.public) == 1 {
		return model.AccessPublic, nil
	}

	return model.AccessNone, ErrInvalidPassword
}
