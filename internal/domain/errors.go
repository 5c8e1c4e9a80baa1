package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid request")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrLevelGate         = errors.New("level is too low for this lesson")
	ErrAlreadyCompleted  = errors.New("lesson already completed")
	ErrNotParticipant    = errors.New("user is not a participant of this chat")
)
