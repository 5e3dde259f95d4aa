package models

import (
	"strings"
	"time"
)

// User is an account that owns one Trello connection and one event log
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	TrelloToken  string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TrelloConnected reports whether the user has stored a Trello token
func (u *User) TrelloConnected() bool {
	return u.TrelloToken != ""
}

// Profile is the public view of a user returned by the auth endpoints
type Profile struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Avatar          string `json:"avatar"`
	TrelloConnected bool   `json:"trelloConnected"`
}

// Profile returns the public view of the user
func (u *User) Profile() Profile {
	return Profile{
		Email:           u.Email,
		Name:            u.Name,
		Avatar:          u.Avatar,
		TrelloConnected: u.TrelloConnected(),
	}
}

// RegisterForm represents the sign-up request body
type RegisterForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// Validate validates the sign-up form
func (f *RegisterForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.Email) == "" || f.Password == "" || strings.TrimSpace(f.Name) == "" {
		errors = append(errors, "email, password, and name are required")
		return errors
	}

	if !isValidEmail(f.Email) {
		errors = append(errors, "Email format is invalid")
	}

	if len(f.Email) > 255 {
		errors = append(errors, "Email must be less than 255 characters")
	}

	// bcrypt ignores everything past 72 bytes
	if len(f.Password) > 72 {
		errors = append(errors, "Password must be at most 72 bytes")
	}

	return errors
}

// LoginForm represents the login request body
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login form
func (f *LoginForm) Validate() []string {
	if strings.TrimSpace(f.Email) == "" || f.Password == "" {
		return []string{"email and password are required"}
	}
	return nil
}

// AuthResult is returned by register and login
type AuthResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// TrelloMember is the subset of the Trello member we show after connecting
type TrelloMember struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}
