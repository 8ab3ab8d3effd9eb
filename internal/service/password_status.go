package service

// PasswordStatus is the outcome of a password change. Callers branch on every value.
type PasswordStatus int

const (
	PasswordUpdated       PasswordStatus = 0
	PasswordUserNotFound  PasswordStatus = -1
	PasswordWrongOld      PasswordStatus = -2
	PasswordUpdateFailed  PasswordStatus = -3
	PasswordInvalidUserID PasswordStatus = -4
)

func (s PasswordStatus) String() string {
	switch s {
	case PasswordUpdated:
		return "updated"
	case PasswordUserNotFound:
		return "user not found"
	case PasswordWrongOld:
		return "wrong old password"
	case PasswordInvalidUserID:
		return "invalid user ID"
	default:
		return "update failed"
	}
}

func (s PasswordStatus) Err() error {
	switch s {
	case PasswordUpdated:
		return nil
	case PasswordUserNotFound:
		return ErrNotFound
	case PasswordWrongOld:
		return ErrPasswordMismatch
	case PasswordInvalidUserID:
		return ErrInvalidID
	default:
		return ErrInternal
	}
}
