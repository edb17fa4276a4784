package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// UserRole enumerates the roles a citizen account can hold.
type UserRole string

const (
	UserRoleCitizen UserRole = "citizen"
	UserRoleManager UserRole = "manager"
)

// Valid reports whether the role is a known enum value.
func (r UserRole) Valid() bool {
	return r == UserRoleCitizen || r == UserRoleManager
}

// User is the domain model for people who report issues.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPatch carries the mutable user fields of a partial update. Nil fields
// were absent from the request and leave the current value untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Role      *UserRole
}

// Apply merges the patch onto the user.
func (u *User) Apply(p UserPatch) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}

// Validate checks field constraints, returning one error per offending field.
func (u *User) Validate() []FieldError {
	var errs []FieldError
	if n := utf8.RuneCountInString(u.FirstName); n < 2 || n > 20 {
		errs = append(errs, FieldError{Field: "firstName", Message: "must be between 2 and 20 characters"})
	}
	if n := utf8.RuneCountInString(u.LastName); n < 2 || n > 20 {
		errs = append(errs, FieldError{Field: "lastName", Message: "must be between 2 and 20 characters"})
	}
	if !u.Role.Valid() {
		errs = append(errs, FieldError{Field: "role", Message: fmt.Sprintf("%q is not a valid role", u.Role)})
	}
	return errs
}
