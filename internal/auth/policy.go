package auth

// Scope describes which slice of the hive collection a listing request may
// see. ASSOCIATION_REP never sees raw records, only the aggregate view.
type Scope int

const (
	// ScopeNone denies the listing entirely (no identity).
	ScopeNone Scope = iota
	// ScopeOwned limits the listing to records owned by the subject.
	ScopeOwned
	// ScopeAll exposes every record.
	ScopeAll
	// ScopeAggregate replaces the listing with aggregate statistics.
	ScopeAggregate
)

// CanCreate reports whether the identity may create hive records.
// BEEKEEPER and ADMIN may; ASSOCIATION_REP is read-only and an absent
// identity can do nothing.
func CanCreate(id *Identity) bool {
	if id == nil {
		return false
	}
	return id.Role == RoleBeekeeper || id.Role == RoleAdmin
}

// CanReadOne reports whether the identity may read the single hive owned by
// ownerID. Ownership is checked first, role second, but the two are OR-ed:
// either grants access on its own.
func CanReadOne(id *Identity, ownerID uint64) bool {
	if id == nil {
		return false
	}
	return id.UserID == ownerID || id.Role == RoleAdmin
}

// CanMutate reports whether the identity may update or delete the hive owned
// by ownerID. The predicate is identical to CanReadOne: owner or ADMIN.
func CanMutate(id *Identity, ownerID uint64) bool {
	return CanReadOne(id, ownerID)
}

// ListScope maps an identity onto the listing scope it is entitled to.
func ListScope(id *Identity) Scope {
	if id == nil {
		return ScopeNone
	}
	switch id.Role {
	case RoleAdmin:
		return ScopeAll
	case RoleAssociationRep:
		return ScopeAggregate
	default:
		return ScopeOwned
	}
}
