package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-marketplace-ddd/internal/domain/domainerr"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/event"
	"github.com/oksasatya/go-marketplace-ddd/internal/domain/valueobject"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	email, err := valueobject.NewEmail("user@example.com")
	require.NoError(t, err)
	u, err := NewUser(email, "$2a$10$hash")
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := newTestUser(t)

	assert.NotEmpty(t, u.ID())
	assert.Equal(t, UserStatusActive, u.Status())
	assert.False(t, u.EmailVerified())
	assert.False(t, u.CreatedAt().IsZero())

	events := u.Events()
	require.Len(t, events, 1)
	created, ok := events[0].(event.UserCreated)
	require.True(t, ok)
	assert.Equal(t, u.ID(), created.AggregateID())
	assert.Equal(t, "user@example.com", created.Email)
}

func TestNewUserValidation(t *testing.T) {
	email, err := valueobject.NewEmail("user@example.com")
	require.NoError(t, err)

	_, err = NewUser(valueobject.Email{}, "hash")
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))

	_, err = NewUser(email, "   ")
	require.Error(t, err)
	assert.True(t, domainerr.IsValidation(err))
}

func TestUserActivateIdempotent(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.Suspend())
	u.ClearEvents()

	require.NoError(t, u.Activate())
	afterFirst := u.UpdatedAt()
	require.Len(t, u.Events(), 1)

	// Second activate is a no-op: same timestamp, no new event.
	require.NoError(t, u.Activate())
	assert.Equal(t, afterFirst, u.UpdatedAt())
	assert.Len(t, u.Events(), 1)
}

func TestUserBanIsTerminal(t *testing.T) {
	u := newTestUser(t)
	u.Ban()
	require.Equal(t, UserStatusBanned, u.Status())

	err := u.Activate()
	require.Error(t, err)
	assert.True(t, domainerr.IsIllegalState(err))
	assert.EqualError(t, err, "Cannot activate a banned user")

	err = u.Suspend()
	require.Error(t, err)
	assert.True(t, domainerr.IsIllegalState(err))
	assert.EqualError(t, err, "Cannot suspend a banned user")

	err = u.Deactivate()
	require.Error(t, err)
	assert.True(t, domainerr.IsIllegalState(err))

	// Banning again changes nothing.
	before := u.UpdatedAt()
	u.ClearEvents()
	u.Ban()
	assert.Equal(t, before, u.UpdatedAt())
	assert.Empty(t, u.Events())
}

func TestUserStatusTransitions(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.Deactivate())
	assert.Equal(t, UserStatusInactive, u.Status())

	require.NoError(t, u.Activate())
	assert.Equal(t, UserStatusActive, u.Status())

	require.NoError(t, u.Suspend())
	assert.Equal(t, UserStatusSuspended, u.Status())

	require.NoError(t, u.Activate())
	assert.Equal(t, UserStatusActive, u.Status())
}

func TestUserUpdatedAtStrictlyIncreases(t *testing.T) {
	u := newTestUser(t)
	var prev time.Time
	for i := 0; i < 5; i++ {
		require.NoError(t, u.Suspend())
		require.NoError(t, u.Activate())
		assert.True(t, u.UpdatedAt().After(prev))
		prev = u.UpdatedAt()
	}
}

func TestUserUpdateEmailResetsVerification(t *testing.T) {
	u := newTestUser(t)
	u.VerifyEmail()
	require.True(t, u.EmailVerified())

	// Even re-setting the same address resets the flag.
	same, err := valueobject.NewEmail("user@example.com")
	require.NoError(t, err)
	require.NoError(t, u.UpdateEmail(same))
	assert.False(t, u.EmailVerified())

	err = u.UpdateEmail(valueobject.Email{})
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))
}

func TestUserVerifyEmailIdempotent(t *testing.T) {
	u := newTestUser(t)
	u.ClearEvents()

	u.VerifyEmail()
	require.Len(t, u.Events(), 1)
	after := u.UpdatedAt()

	u.VerifyEmail()
	assert.Len(t, u.Events(), 1)
	assert.Equal(t, after, u.UpdatedAt())
}

func TestUserChangePassword(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.ChangePassword("$2a$10$newhash"))
	assert.Equal(t, "$2a$10$newhash", u.PasswordHash())

	for _, bad := range []string{"", "   "} {
		err := u.ChangePassword(bad)
		require.Error(t, err)
		assert.True(t, domainerr.IsValidation(err))
	}
}

func TestUserUpdatePhone(t *testing.T) {
	u := newTestUser(t)
	phone, err := valueobject.NewPhoneNumber("0901234567")
	require.NoError(t, err)

	u.UpdatePhone(&phone)
	require.NotNil(t, u.Phone())
	assert.Equal(t, "901234567", u.Phone().Value())

	u.UpdatePhone(nil)
	assert.Nil(t, u.Phone())
}

func TestUserRolesAndAddresses(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.AssignRole("role-1"))
	require.NoError(t, u.AssignRole("role-1"))
	assert.Equal(t, []string{"role-1"}, u.RoleIDs())

	u.RevokeRole("role-1")
	assert.Empty(t, u.RoleIDs())
	u.RevokeRole("role-1") // non-member, silent

	require.NoError(t, u.AddAddress("addr-1"))
	require.NoError(t, u.AddAddress("addr-2"))
	assert.Equal(t, []string{"addr-1", "addr-2"}, u.AddressIDs())
	u.RemoveAddress("addr-1")
	assert.Equal(t, []string{"addr-2"}, u.AddressIDs())

	err := u.AssignRole("")
	require.Error(t, err)
	assert.True(t, domainerr.IsNullArgument(err))
}

func TestRehydrateUserRecordsNoEvents(t *testing.T) {
	email, err := valueobject.NewEmail("stored@example.com")
	require.NoError(t, err)
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	u := RehydrateUser("id-1", email, "hash", nil, UserStatusSuspended, true, nil, nil, created, created)

	assert.Empty(t, u.Events())
	assert.Equal(t, UserStatusSuspended, u.Status())
	assert.True(t, u.EmailVerified())
	assert.Equal(t, created, u.CreatedAt())
}
