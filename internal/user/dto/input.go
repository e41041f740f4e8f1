package dto

import "github.com/fekuna/kitmed-catalog-service/internal/model"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserInput struct {
	Email       string             `json:"email" binding:"required,email"`
	Name        string             `json:"name" binding:"required,max=200"`
	Password    string             `json:"password" binding:"required,min=8"`
	Role        model.Role         `json:"role" binding:"required,oneof=super_admin admin editor"`
	IsActive    *bool              `json:"is_active"`
	Permissions []model.Permission `json:"permissions"`
}

// UpdateUserInput leaves the password untouched when Password is empty.
type UpdateUserInput struct {
	ID       string     `json:"-"`
	Email    string     `json:"email" binding:"required,email"`
	Name     string     `json:"name" binding:"required,max=200"`
	Password string     `json:"password" binding:"omitempty,min=8"`
	Role     model.Role `json:"role" binding:"required,oneof=super_admin admin editor"`
	IsActive bool       `json:"is_active"`
}

type SetPermissionsInput struct {
	Permissions []model.Permission `json:"permissions" binding:"required"`
}
