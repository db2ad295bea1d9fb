package entity

import "time"

// Papéis válidos no sistema.
const (
	RoleAdmin        = "admin"
	RoleProfissional = "profissional"
)

// User representa uma identidade autenticável (credenciais + sessão).
// O vínculo do usuário com uma conta principal fica em Profile.
type User struct {
	ID             string
	Email          string
	PasswordHash   string // hash bcrypt, nunca em texto plano após persistir
	EmailConfirmed bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserRole vincula um usuário a exatamente um papel (admin ou profissional).
// A tabela tem unique em user_id: a troca de papel é delete+insert na mesma
// transação, sem janela observável com zero papéis.
type UserRole struct {
	ID     string
	UserID string
	Role   string
}
