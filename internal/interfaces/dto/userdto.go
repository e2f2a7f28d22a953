package dto

import (
	"time"

	"habita/internal/domain/user"
)

type UserDTO struct {
	SID       string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u *user.User) UserDTO {
	return UserDTO{
		SID:       u.SID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Phone:     u.Phone(),
		Role:      string(u.Role()),
		Status:    string(u.Status()),
		CreatedAt: u.CreatedAt(),
	}
}
