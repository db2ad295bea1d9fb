package dto

import "time"

// SignupRequest entrada do cadastro: email e password.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nome     string `json:"nome"`
}

// LoginRequest entrada do login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse saída de um usuário (sem credenciais).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse sessão emitida após cadastro ou login. Token vazio com
// PendingConfirmation true significa que o usuário precisa confirmar o e-mail.
type SessionResponse struct {
	Token               string       `json:"token,omitempty"`
	PendingConfirmation bool         `json:"pending_confirmation,omitempty"`
	User                UserResponse `json:"user"`
}
