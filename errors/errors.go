package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrUnknownKind = fmt.Errorf("unknown record kind")

	// Accounts
	ErrUserAlreadyExists   = fmt.Errorf("user already exists")
	ErrUserNotFound        = fmt.Errorf("user not found")
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials")
	ErrInvalidPassword     = fmt.Errorf("password does not meet requirements")
	ErrInvalidRegistration = fmt.Errorf("invalid registration")
	ErrTokenGeneration     = fmt.Errorf("token generation failed")

	// Sessions
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrSessionInvalid  = fmt.Errorf("session is expired or terminated")

	// Chats
	ErrChatNotFound    = fmt.Errorf("chat not found")
	ErrMessageNotFound = fmt.Errorf("message not found")
	ErrNotAGroupChat   = fmt.Errorf("chat is not a group chat")

	ErrNotificationNotFound = fmt.Errorf("notification not found")
	ErrMediaNotFound        = fmt.Errorf("media file not found")
)
