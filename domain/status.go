package domain

import "fmt"

type UserStatus string

const (
	UserActive    UserStatus = "Active"
	UserSuspended UserStatus = "Suspended"
	UserDeleted   UserStatus = "Deleted"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch status := UserStatus(s); status {
	case UserActive, UserSuspended, UserDeleted:
		return status, nil
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

func (s UserStatus) String() string {
	return string(s)
}

func (s UserStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *UserStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseUserStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type NotificationType string

const (
	NotificationMessage NotificationType = "Message"
	NotificationInvite  NotificationType = "Invite"
	NotificationSystem  NotificationType = "System"
)

func ParseNotificationType(s string) (NotificationType, error) {
	switch t := NotificationType(s); t {
	case NotificationMessage, NotificationInvite, NotificationSystem:
		return t, nil
	}
	return "", fmt.Errorf("unknown notification type %q", s)
}

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

func (t *NotificationType) UnmarshalText(text []byte) error {
	parsed, err := ParseNotificationType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
