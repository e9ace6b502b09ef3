package models

import "strings"

// Role is a small capability set. Admin supersedes supplier and customer.
type Role uint8

const (
	RoleAdmin Role = 1 << iota
	RoleSupplier
	RoleCustomer
)

func RolesFromFlags(isAdmin, isSupplier, isCustomer bool) Role {
	var r Role
	if isAdmin {
		r |= RoleAdmin
	}
	if isSupplier {
		r |= RoleSupplier
	}
	if isCustomer {
		r |= RoleCustomer
	}
	return r
}

func (r Role) Has(other Role) bool {
	return r&other != 0
}

func (r Role) String() string {
	var parts []string
	if r.Has(RoleAdmin) {
		parts = append(parts, "admin")
	}
	if r.Has(RoleSupplier) {
		parts = append(parts, "supplier")
	}
	if r.Has(RoleCustomer) {
		parts = append(parts, "customer")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Actor is the authenticated identity performing an operation. It is a value type
// with unexported fields so it cannot be mutated after construction.
type Actor struct {
	id       int64
	username string
	roles    Role
}

func NewActor(id int64, username string, roles Role) Actor {
	return Actor{id: id, username: username, roles: roles}
}

func ActorFromUser(u *User) Actor {
	return NewActor(u.ID, u.Username, u.Roles())
}

func (a Actor) ID() int64        { return a.id }
func (a Actor) Username() string { return a.username }
func (a Actor) Roles() Role      { return a.roles }
func (a Actor) IsAdmin() bool    { return a.roles.Has(RoleAdmin) }
func (a Actor) IsSupplier() bool { return a.roles.Has(RoleSupplier) }
func (a Actor) IsCustomer() bool { return a.roles.Has(RoleCustomer) }
