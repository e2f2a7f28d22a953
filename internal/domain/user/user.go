package user

import (
	"fmt"
	"strings"
	"time"

	"habita/internal/shared/authorization"
)

// Status represents the account state
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusSuspended
}

// User represents the user aggregate root
type User struct {
	id           uint
	sid          string
	email        string
	name         string
	phone        string
	passwordHash string
	role         authorization.UserRole
	status       Status
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new active user with the regular role.
// The password must already be hashed by the caller.
func NewUser(email, name, phone, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now()
	return &User{
		email:        email,
		name:         name,
		phone:        phone,
		passwordHash: passwordHash,
		role:         authorization.RoleUser,
		status:       StatusActive,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct reconstructs a user from persistence
func Reconstruct(
	id uint,
	sid, email, name, phone, passwordHash string,
	role authorization.UserRole,
	status Status,
	version int,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid user role: %s", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid user status: %s", status)
	}

	return &User{
		id:           id,
		sid:          sid,
		email:        email,
		name:         name,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		status:       status,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ID returns the user ID
func (u *User) ID() uint {
	return u.id
}

// SetID sets the user ID (for persistence layer)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// SID returns the short public identifier
func (u *User) SID() string {
	return u.sid
}

// SetSID sets the short public identifier (for persistence layer)
func (u *User) SetSID(sid string) {
	u.sid = sid
}

// Email returns the user email
func (u *User) Email() string {
	return u.email
}

// Name returns the display name
func (u *User) Name() string {
	return u.name
}

// Phone returns the contact phone
func (u *User) Phone() string {
	return u.phone
}

// PasswordHash returns the stored password hash
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the user role
func (u *User) Role() authorization.UserRole {
	return u.role
}

// Status returns the account status
func (u *User) Status() Status {
	return u.status
}

// Version returns the aggregate version for optimistic locking
func (u *User) Version() int {
	return u.version
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.role == authorization.RoleAdmin
}

// IsActive reports whether the account may authenticate
func (u *User) IsActive() bool {
	return u.status == StatusActive
}

// UpdateProfile changes the display name and phone
func (u *User) UpdateProfile(name, phone string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	u.name = name
	u.phone = phone
	u.touch()
	return nil
}

// ChangePassword replaces the password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.touch()
	return nil
}

// Suspend blocks the account from authenticating
func (u *User) Suspend() {
	if u.status == StatusSuspended {
		return
	}
	u.status = StatusSuspended
	u.touch()
}

// Activate restores a suspended account
func (u *User) Activate() {
	if u.status == StatusActive {
		return
	}
	u.status = StatusActive
	u.touch()
}

// PromoteToAdmin grants the admin role
func (u *User) PromoteToAdmin() {
	u.role = authorization.RoleAdmin
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now()
	u.version++
}
