package auth

// Role is the closed set of capability levels a principal can hold.  The
// levels form an implication chain: an admin can do anything a moderator
// can, and a moderator anything a plain user can.  The role is computed once
// from the stored flags when a request is authenticated instead of checking
// boolean combinations at every call site.
type Role uint8

const (
	RoleUser Role = iota
	RoleModerator
	RoleAdmin
)

// RoleFromFlags maps the users table's is_admin/is_moderator columns onto a
// Role.  Admin wins when both flags are set.
func RoleFromFlags(isAdmin, isModerator bool) Role {
	switch {
	case isAdmin:
		return RoleAdmin
	case isModerator:
		return RoleModerator
	default:
		return RoleUser
	}
}

// AtLeast reports whether r grants the capabilities of min.
func (r Role) AtLeast(min Role) bool { return r >= min }

// String returns the lowercase role name used in API responses.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleModerator:
		return "moderator"
	default:
		return "user"
	}
}
