package service

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is deactivated")
	ErrInviteCodeInvalid   = errors.New("invite code invalid, used or expired")
	ErrDuplicateAssignment = errors.New("route already assigned to this user for this date")
	ErrInvalidStatus       = errors.New("unknown assignment status")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD")
	ErrForbidden           = errors.New("insufficient permissions")
	ErrInvalidRole         = errors.New("unknown role")
)
