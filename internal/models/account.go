package models

import "time"

// Role — роль учётной записи в сообществе.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Account — учётная запись автора (PostgreSQL, таблица accounts).
// DeletedAt != nil — аккаунт удалён навсегда (AccountDeletionShadow).
type Account struct {
	ID          int64
	DisplayName string
	AvatarURL   string
	Role        Role
	DeletedAt   *time.Time
}

// Deleted сообщает, что аккаунт удалён и его имя нельзя показывать.
func (a *Account) Deleted() bool {
	return a != nil && a.DeletedAt != nil
}

// CanModerate — полномочия модератора (отзыв чужих комментариев, закрепление).
func (a *Account) CanModerate() bool {
	if a == nil || a.Deleted() {
		return false
	}

	switch a.Role {
	case RoleModerator, RoleAdmin:
		return true
	default:
		return false
	}
}
