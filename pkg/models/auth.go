package models

// LoginRequest is the credential payload for /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the opaque bearer token issued on login
type LoginResponse struct {
	Token string `json:"token"`
}
