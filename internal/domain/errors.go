package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")

	// Erros do fluxo de convites.
	ErrInviteNotFound = errors.New("convite não encontrado ou já utilizado")
	ErrInviteExpired  = errors.New("convite expirado")
	ErrEmailMismatch  = errors.New("este convite foi enviado para outro e-mail")
	ErrOriginRequired = errors.New("origin é obrigatório para montar o link do convite")
)
