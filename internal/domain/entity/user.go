package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/event"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

// UserStatus is stored and exposed as its numeric code; String is for logs
// and event payloads.
type UserStatus uint8

const (
	UserStatusActive UserStatus = iota + 1
	UserStatusInactive
	UserStatusSuspended
	UserStatusBanned
)

func (s UserStatus) String() string {
	switch s {
	case UserStatusActive:
		return "active"
	case UserStatusInactive:
		return "inactive"
	case UserStatusSuspended:
		return "suspended"
	case UserStatusBanned:
		return "banned"
	default:
		return "unknown"
	}
}

// User is the aggregate root for the user domain. Passwords are stored as
// bcrypt hashes. Addresses and roles are owned as id references so the
// aggregate never embeds entities it does not control.
//
// Not safe for concurrent mutation; one writer per unit of work.
type User struct {
	event.Buffer

	id            string
	email         valueobject.Email
	passwordHash  string
	phone         *valueobject.PhoneNumber
	status        UserStatus
	emailVerified bool
	addressIDs    []string
	roleIDs       []string
	createdAt     time.Time
	updatedAt     time.Time
}

// NewUser creates an active, unverified user and records UserCreated.
func NewUser(email valueobject.Email, passwordHash string) (*User, error) {
	if email.IsZero() {
		return nil, domainerr.NullArgument("email")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, domainerr.Validation("Password hash cannot be empty")
	}
	now := time.Now().UTC()
	u := &User{
		id:           uuid.NewString(),
		email:        email,
		passwordHash: passwordHash,
		status:       UserStatusActive,
		createdAt:    now,
		updatedAt:    now,
	}
	u.Record(event.NewUserCreated(u.id, u.email.Value()))
	return u, nil
}

// RehydrateUser rebuilds a user from stored fields. It bypasses transition
// validation and records no events; only the persistence layer calls it.
func RehydrateUser(
	id string,
	email valueobject.Email,
	passwordHash string,
	phone *valueobject.PhoneNumber,
	status UserStatus,
	emailVerified bool,
	addressIDs, roleIDs []string,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		email:         email,
		passwordHash:  passwordHash,
		phone:         phone,
		status:        status,
		emailVerified: emailVerified,
		addressIDs:    addressIDs,
		roleIDs:       roleIDs,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (u *User) ID() string                          { return u.id }
func (u *User) Email() valueobject.Email            { return u.email }
func (u *User) PasswordHash() string                { return u.passwordHash }
func (u *User) Phone() *valueobject.PhoneNumber     { return u.phone }
func (u *User) Status() UserStatus                  { return u.status }
func (u *User) EmailVerified() bool                 { return u.emailVerified }
func (u *User) CreatedAt() time.Time                { return u.createdAt }
func (u *User) UpdatedAt() time.Time                { return u.updatedAt }

func (u *User) AddressIDs() []string {
	out := make([]string, len(u.addressIDs))
	copy(out, u.addressIDs)
	return out
}

func (u *User) RoleIDs() []string {
	out := make([]string, len(u.roleIDs))
	copy(out, u.roleIDs)
	return out
}

func (u *User) IsActive() bool { return u.status == UserStatusActive }

// touch bumps UpdatedAt and keeps it strictly increasing even when two
// mutations land on the same clock tick.
func (u *User) touch() {
	now := time.Now().UTC()
	if !now.After(u.updatedAt) {
		now = u.updatedAt.Add(time.Nanosecond)
	}
	u.updatedAt = now
}

func (u *User) changeStatus(to UserStatus) {
	from := u.status
	u.status = to
	u.touch()
	u.Record(event.NewUserStatusChanged(u.id, from.String(), to.String()))
}

// Activate moves the user to Active. Idempotent when already active;
// illegal for banned users.
func (u *User) Activate() error {
	if u.status == UserStatusBanned {
		return domainerr.IllegalState("Cannot activate a banned user")
	}
	if u.status == UserStatusActive {
		return nil
	}
	u.changeStatus(UserStatusActive)
	return nil
}

// Deactivate moves the user to Inactive. Illegal for banned users.
func (u *User) Deactivate() error {
	if u.status == UserStatusBanned {
		return domainerr.IllegalState("Cannot deactivate a banned user")
	}
	if u.status == UserStatusInactive {
		return nil
	}
	u.changeStatus(UserStatusInactive)
	return nil
}

// Suspend moves the user to Suspended. Illegal for banned users.
func (u *User) Suspend() error {
	if u.status == UserStatusBanned {
		return domainerr.IllegalState("Cannot suspend a banned user")
	}
	if u.status == UserStatusSuspended {
		return nil
	}
	u.changeStatus(UserStatusSuspended)
	return nil
}

// Ban is terminal: legal from any state, and only an out-of-band
// administrative path may reverse it.
func (u *User) Ban() {
	if u.status == UserStatusBanned {
		return
	}
	u.changeStatus(UserStatusBanned)
}

// UpdateEmail replaces the email and always resets the verified flag, even
// when the new address equals the old one.
func (u *User) UpdateEmail(newEmail valueobject.Email) error {
	if newEmail.IsZero() {
		return domainerr.NullArgument("newEmail")
	}
	u.email = newEmail
	u.emailVerified = false
	u.touch()
	u.Record(event.NewUserEmailUpdated(u.id, newEmail.Value()))
	return nil
}

// VerifyEmail marks the current email verified. No-op when already verified.
func (u *User) VerifyEmail() {
	if u.emailVerified {
		return
	}
	u.emailVerified = true
	u.touch()
	u.Record(event.NewUserEmailVerified(u.id))
}

// ChangePassword replaces the stored hash.
func (u *User) ChangePassword(newHash string) error {
	if strings.TrimSpace(newHash) == "" {
		return domainerr.Validation("Password hash cannot be empty")
	}
	u.passwordHash = newHash
	u.touch()
	u.Record(event.NewUserPasswordChanged(u.id))
	return nil
}

// UpdatePhone unconditionally replaces the phone number; pass nil to clear.
func (u *User) UpdatePhone(newPhone *valueobject.PhoneNumber) {
	u.phone = newPhone
	u.touch()
	phone := ""
	if newPhone != nil {
		phone = newPhone.Value()
	}
	u.Record(event.NewUserPhoneUpdated(u.id, phone))
}

// AddAddress attaches an address by id. Duplicate ids are ignored.
func (u *User) AddAddress(addressID string) error {
	if strings.TrimSpace(addressID) == "" {
		return domainerr.NullArgument("addressID")
	}
	for _, id := range u.addressIDs {
		if id == addressID {
			return nil
		}
	}
	u.addressIDs = append(u.addressIDs, addressID)
	u.touch()
	return nil
}

// RemoveAddress detaches an address by id; removing a non-member is a no-op.
func (u *User) RemoveAddress(addressID string) {
	for i, id := range u.addressIDs {
		if id == addressID {
			u.addressIDs = append(u.addressIDs[:i], u.addressIDs[i+1:]...)
			u.touch()
			return
		}
	}
}

// AssignRole attaches a role by id. Duplicate assignments are ignored.
func (u *User) AssignRole(roleID string) error {
	if strings.TrimSpace(roleID) == "" {
		return domainerr.NullArgument("roleID")
	}
	for _, id := range u.roleIDs {
		if id == roleID {
			return nil
		}
	}
	u.roleIDs = append(u.roleIDs, roleID)
	u.touch()
	return nil
}

// RevokeRole detaches a role by id; revoking a non-member is a no-op.
func (u *User) RevokeRole(roleID string) {
	for i, id := range u.roleIDs {
		if id == roleID {
			u.roleIDs = append(u.roleIDs[:i], u.roleIDs[i+1:]...)
			u.touch()
			return
		}
	}
}
