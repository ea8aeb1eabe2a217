package models

import "time"

// User is a registered operator account
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"nombre"`
	FirstSurname  string    `json:"primer_apellido"`
	SecondSurname string    `json:"segundo_apellido"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"-"`
}

// UserCreate is the registration payload
type UserCreate struct {
	Name          string `json:"nombre" binding:"required"`
	FirstSurname  string `json:"primer_apellido" binding:"required"`
	SecondSurname string `json:"segundo_apellido" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
