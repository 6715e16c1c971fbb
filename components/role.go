package components

// Role tags what gameplay rules apply to an entity.
type Role uint8

const (
	RoleNone Role = iota
	RolePlayer
	RoleEnemy
	RoleBullet
)

// String returns the display name for a Role.
func (r Role) String() string {
	names := RoleNames()
	if int(r) < len(names) {
		return names[r]
	}
	return "Unknown"
}

// RoleNames returns the display names for all roles.
// The order matches the Role constants.
func RoleNames() []string {
	return []string{"None", "Player", "Enemy", "Bullet"}
}

// Solid reports whether entities of this role push each other apart on contact.
func (r Role) Solid() bool {
	return r == RolePlayer || r == RoleEnemy
}
