package models

// RoleUser is the default role assigned at registration.
const RoleUser = "user"
const RoleAdmin = "admin"

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
