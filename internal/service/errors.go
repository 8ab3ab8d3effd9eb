package service

import "errors"

var (
	ErrInternal              = errors.New("internal server error")
	ErrNotFound              = errors.New("not found")
	ErrInvalidID             = errors.New("invalid ID")
	ErrCommentFilterRequired = errors.New("exactly one of post ID or user ID must be provided")
	ErrPasswordMismatch      = errors.New("wrong password")
	ErrPartialWrite          = errors.New("update applied but dependent documents were not all updated")
	ErrNotTestMode           = errors.New("database can only be cleared in TEST mode")
)
