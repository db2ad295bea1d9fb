package repository

import "github.com/agendaclin/consultorio-api/internal/domain/entity"

// UserRepository define o porto de persistência para User (identidade).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error) // busca sem diferenciar maiúsculas
	Update(user *entity.User) error
}

// RoleRepository define o porto de persistência para papéis de usuário.
// ReplaceForUser remove qualquer papel existente e grava o novo na mesma
// operação lógica; é o colapso de papel usado na aceitação de convite.
type RoleRepository interface {
	GetByUserID(userID string) (*entity.UserRole, error)
	Create(role *entity.UserRole) error
	ReplaceForUser(userID, role string) error
}
