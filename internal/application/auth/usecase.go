package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
	"github.com/agendaclin/consultorio-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens de sessão.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner executa o provisionamento do cadastro dentro de uma transação.
// Usuário, papel e perfil ou entram juntos ou nada entra; sem isso, uma falha
// no meio deixaria uma identidade órfã, sem papel nem perfil.
type TxRunner interface {
	Run(fn func(
		userRepo repository.UserRepository,
		roleRepo repository.RoleRepository,
		profileRepo repository.ProfileRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticação: cadastro e login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	profileRepo repository.ProfileRepository
	tx          TxRunner
	jwtCfg      JWTConfig
	// emailConfirmation quando true o cadastro não emite sessão imediata.
	emailConfirmation bool
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	profileRepo repository.ProfileRepository,
	tx TxRunner,
	jwtCfg JWTConfig,
	emailConfirmation bool,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:          userRepo,
		roleRepo:          roleRepo,
		profileRepo:       profileRepo,
		tx:                tx,
		jwtCfg:            jwtCfg,
		emailConfirmation: emailConfirmation,
	}
}

// Signup cria um usuário com hash bcrypt e provisiona o estado de conta nova:
// papel admin (toda conta avulsa nasce principal; a aceitação de convite troca
// depois para profissional) e perfil mínimo apontando para si mesmo.
// Devolve domain.ErrEmailAlreadyExists se o e-mail já estiver cadastrado.
func (uc *AuthUseCase) Signup(in dto.SignupRequest) (*dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("consultar e-mail: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash de senha: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   string(hash),
		EmailConfirmed: !uc.emailConfirmation,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		if i := strings.Index(email, "@"); i > 0 {
			nome = email[:i]
		} else {
			nome = email
		}
	}

	err = uc.tx.Run(func(
		userRepo repository.UserRepository,
		roleRepo repository.RoleRepository,
		profileRepo repository.ProfileRepository,
	) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		if err := roleRepo.Create(&entity.UserRole{
			ID:     uuid.NewString(),
			UserID: user.ID,
			Role:   entity.RoleAdmin,
		}); err != nil {
			return fmt.Errorf("atribuir papel inicial: %w", err)
		}
		if err := profileRepo.Upsert(&entity.Profile{
			ID:               user.ID,
			Nome:             nome,
			Email:            email,
			CorIdentificacao: entity.CorIdentificacaoPadrao,
			ContaPrincipalID: user.ID,
			Ativo:            true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}); err != nil {
			return fmt.Errorf("criar perfil inicial: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &dto.SessionResponse{
		User: dto.UserResponse{ID: user.ID, Email: user.Email, Role: entity.RoleAdmin, CreatedAt: user.CreatedAt},
	}
	if uc.emailConfirmation {
		out.PendingConfirmation = true
		return out, nil
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, entity.RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir sessão: %w", err)
	}
	out.Token = token
	return out, nil
}

// Login verifica as credenciais e devolve token + usuário.
// Perfis desativados pelo admin não entram (domain.ErrForbidden).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("consultar usuário: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	profile, err := uc.profileRepo.GetByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar perfil: %w", err)
	}
	if profile != nil && !profile.Ativo {
		return nil, domain.ErrForbidden
	}

	role, err := uc.roleRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar papel: %w", err)
	}
	roleName := ""
	if role != nil {
		roleName = role.Role
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, roleName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir sessão: %w", err)
	}
	return &dto.SessionResponse{
		Token: token,
		User:  dto.UserResponse{ID: user.ID, Email: user.Email, Role: roleName, CreatedAt: user.CreatedAt},
	}, nil
}
