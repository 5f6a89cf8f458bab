package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// RoleFromEmail derives the account role from the email's domain suffix.
// The convention is part of the external interface: @patients.com,
// @doctors.com and @admin.com are the only accepted domains.
func RoleFromEmail(email string) (Role, error) {
	switch {
	case strings.HasSuffix(email, "@patients.com"):
		return RolePatient, nil
	case strings.HasSuffix(email, "@doctors.com"):
		return RoleDoctor, nil
	case strings.HasSuffix(email, "@admin.com"):
		return RoleAdmin, nil
	default:
		return "", NewError(KindInvalidArgument, "Invalid email domain. Use @patients.com, @doctors.com, or @admin.com")
	}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
