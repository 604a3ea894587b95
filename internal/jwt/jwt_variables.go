package jwt

import (
	"elearn-backend/internal/env"
	"time"
)

const TokenTTL = time.Hour

const (
	RoleUser Role = iota
)

// DefaultUserSecret is the documented fallback when JWT_SECRET is unset. It is
// a known weakness of the deployment story, kept verbatim rather than papered
// over; env.MustHave in the cmd mains is the place to harden it.
const DefaultUserSecret = "supersecretkey"

func roleSecret(role Role) (string, bool) {
	switch role {
	case RoleUser:
		return env.GetOrDefault(env.JWTSecretKey, DefaultUserSecret), true
	}
	return "", false
}
