package domain

import "errors"

var (
	ErrSendingReplyFailed     = errors.New("failed to send reply")
	ErrEmptyPrompt            = errors.New("empty prompt")
	ErrCommandNotFound        = errors.New("command not found")
	ErrRegistryNotInitialized = errors.New("can't fetch command, registry not initialized")
	ErrNoModels               = errors.New("no models configured")
)
