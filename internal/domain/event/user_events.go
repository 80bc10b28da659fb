package event

// User aggregate events.

type UserCreated struct {
	base
	Email string `json:"email"`
}

func NewUserCreated(userID, email string) UserCreated {
	return UserCreated{base: newBase(userID), Email: email}
}

func (UserCreated) EventName() string { return "user.created" }

type UserStatusChanged struct {
	base
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewUserStatusChanged(userID, oldStatus, newStatus string) UserStatusChanged {
	return UserStatusChanged{base: newBase(userID), OldStatus: oldStatus, NewStatus: newStatus}
}

func (UserStatusChanged) EventName() string { return "user.status_changed" }

type UserEmailUpdated struct {
	base
	NewEmail string `json:"new_email"`
}

func NewUserEmailUpdated(userID, newEmail string) UserEmailUpdated {
	return UserEmailUpdated{base: newBase(userID), NewEmail: newEmail}
}

func (UserEmailUpdated) EventName() string { return "user.email_updated" }

type UserEmailVerified struct {
	base
}

func NewUserEmailVerified(userID string) UserEmailVerified {
	return UserEmailVerified{base: newBase(userID)}
}

func (UserEmailVerified) EventName() string { return "user.email_verified" }

type UserPasswordChanged struct {
	base
}

func NewUserPasswordChanged(userID string) UserPasswordChanged {
	return UserPasswordChanged{base: newBase(userID)}
}

func (UserPasswordChanged) EventName() string { return "user.password_changed" }

type UserPhoneUpdated struct {
	base
	// Phone is the normalized local form, empty when the phone was cleared.
	Phone string `json:"phone"`
}

func NewUserPhoneUpdated(userID, phone string) UserPhoneUpdated {
	return UserPhoneUpdated{base: newBase(userID), Phone: phone}
}

func (UserPhoneUpdated) EventName() string { return "user.phone_updated" }
