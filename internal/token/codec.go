// Package token decodes the payload segment of backend-issued JWTs without
// verifying the signature. The backend validates tokens on every protected
// call; the console only reads the subject id and expiry to drive session
// state, so undecodable input always collapses to the least-privileged
// interpretation (no subject, expired).
package token

import (
	"math"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Payload holds the claims the console consumes from a decoded token.
// SubjectID and ExpiresAt are the only strongly typed claims; everything else
// the backend put in the token is carried in Claims for forward compatibility.
type Payload struct {
	// SubjectID is the authenticated principal's id from the user_id claim,
	// falling back to sub. Zero with HasSubject false when neither is numeric.
	SubjectID  int64
	HasSubject bool
	// ExpiresAt is the exp claim. Zero with HasExpiry false when exp is
	// missing or non-numeric.
	ExpiresAt time.Time
	HasExpiry bool
	// Claims is the full decoded claim set, untyped.
	Claims jwt.MapClaims
}

// Decode parses the payload segment of a three-segment token string.
// Returns nil for any malformed input (wrong segment count, invalid base64url,
// invalid JSON); it never panics and never returns an error to the caller.
func Decode(tokenString string) *Payload {
	if tokenString == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	p := &Payload{Claims: claims}
	if id, ok := numericClaim(claims["user_id"]); ok {
		p.SubjectID = id
		p.HasSubject = true
	} else if id, ok := numericClaim(claims["sub"]); ok {
		p.SubjectID = id
		p.HasSubject = true
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		p.ExpiresAt = exp.Time
		p.HasExpiry = true
	}
	return p
}

// SubjectID returns the principal id from the user_id claim (sub as fallback)
// and true, or 0 and false when the token is undecodable or neither claim is
// a valid number. Numeric strings are coerced.
func SubjectID(tokenString string) (int64, bool) {
	p := Decode(tokenString)
	if p == nil || !p.HasSubject {
		return 0, false
	}
	return p.SubjectID, true
}

// IsExpired reports whether the token must be treated as expired at now.
// Fail-closed: an absent, undecodable, or expiry-less token is expired.
// The comparison is at second resolution and the boundary is inclusive:
// exp == now counts as expired.
func IsExpired(tokenString string, now time.Time) bool {
	p := Decode(tokenString)
	if p == nil || !p.HasExpiry {
		return true
	}
	return p.ExpiresAt.Unix() <= now.Unix()
}

// numericClaim coerces a decoded JSON claim value to int64. Accepts JSON
// numbers (float64 after unmarshal) and numeric strings. Subject ids are
// integers, so fractional values report false rather than truncating.
func numericClaim(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
