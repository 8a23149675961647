package auth

import (
	"net/http"
	"strings"
)

// Role is the closed set of roles a user can hold. Unrecognized values are
// rejected at the registration boundary rather than defaulted deep inside
// business logic.
type Role string

const (
	RoleBeekeeper      Role = "BEEKEEPER"
	RoleAdmin          Role = "ADMIN"
	RoleAssociationRep Role = "ASSOCIATION_REP"
)

// ParseRole maps a raw string onto the role enum. Input is trimmed and
// upper-cased before matching. The second return value reports whether the
// value named a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleBeekeeper:
		return RoleBeekeeper, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleAssociationRep:
		return RoleAssociationRep, true
	}
	return "", false
}

// Identity is the authenticated subject derived from a verified token. It is
// never persisted and is reconstructed fresh on every request.
type Identity struct {
	UserID uint64
	Role   Role
}

// Extractor resolves the Authorization header of an inbound request into an
// Identity using the token codec it was constructed with.
type Extractor struct {
	codec *TokenCodec
}

// NewExtractor wires an Extractor to the given codec.
func NewExtractor(codec *TokenCodec) *Extractor {
	return &Extractor{codec: codec}
}

// FromRequest reads the credential header and returns the authenticated
// identity, or nil when the request carries no usable credential. The header
// must be exactly "Bearer <token>" with a single space. Absent or malformed
// headers and every verification failure all collapse to nil: ambiguous
// credentials are treated as unauthenticated, never as degraded trust.
func (e *Extractor) FromRequest(r *http.Request) *Identity {
	if e == nil || e.codec == nil {
		return nil
	}
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return nil
	}
	userID, role, err := e.codec.Verify(token)
	if err != nil {
		return nil
	}
	return &Identity{UserID: userID, Role: role}
}
