package models

// UserAccount is a mock account record. The password is stored as typed: the
// directory only simulates sign-in and must not be reused for real authentication.
type UserAccount struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the currently signed-in user.
type Session struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}
