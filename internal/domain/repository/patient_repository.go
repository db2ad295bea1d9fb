package repository

import "github.com/agendaclin/consultorio-api/internal/domain/entity"

// PatientFilter filtros de listagem de pacientes.
type PatientFilter struct {
	Nome     string // busca por prefixo em nome_lowercase
	Archived bool
	Limit    int
	Offset   int
}

// PatientRepository define o porto de persistência para pacientes.
// Os métodos de leitura recebem o escopo de conta já resolvido: a lista de
// IDs de usuário visíveis ao chamador (o análogo das políticas por linha).
type PatientRepository interface {
	Create(p *entity.Patient) error
	GetByID(id string, scope []string) (*entity.Patient, error)
	List(scope []string, f PatientFilter) ([]*entity.Patient, error)
	Update(p *entity.Patient) error
	SetArchived(id string, archived bool, updatedBy string) error
}
