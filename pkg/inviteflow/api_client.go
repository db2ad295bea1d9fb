package inviteflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// InviteInfo metadados públicos de um convite (consulta por token).
type InviteInfo struct {
	Email            string `json:"email"`
	NomeProfissional string `json:"nome_profissional"`
	CorIdentificacao string `json:"cor_identificacao"`
	Status           string `json:"status"`
	ExpiresAt        string `json:"expires_at"`
}

// InviteDirectory consulta convites por token.
type InviteDirectory interface {
	Lookup(ctx context.Context, token string) (*InviteInfo, error)
}

// AuthProvider cadastra e autentica usuários. Signup devolve pending=true
// quando a confirmação de e-mail está habilitada e ainda não há sessão.
type AuthProvider interface {
	Signup(ctx context.Context, email, password, nome string) (sess *Session, pending bool, err error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

// Acceptor chama o fluxo de aceitação de convite com a sessão dada.
type Acceptor interface {
	Accept(ctx context.Context, sess *Session, inviteToken string) (message string, err error)
}

// APIError erro estruturado devolvido pelo servidor.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// APIClient implementa InviteDirectory, AuthProvider e Acceptor contra a
// API HTTP do consultório.
type APIClient struct {
	http *resty.Client
}

var (
	_ InviteDirectory = (*APIClient)(nil)
	_ AuthProvider    = (*APIClient)(nil)
	_ Acceptor        = (*APIClient)(nil)
)

// NewAPIClient constrói o cliente apontando para baseURL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

// decodeError extrai a mensagem estruturada do corpo de erro; se o corpo
// não for decodificável, cai na mensagem genérica.
func decodeError(resp *resty.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return &APIError{Status: resp.StatusCode(), Message: body.Error}
	}
	return &APIError{Status: resp.StatusCode(), Message: "falha na comunicação com o servidor"}
}

// Lookup consulta os metadados públicos do convite.
func (c *APIClient) Lookup(ctx context.Context, token string) (*InviteInfo, error) {
	var out InviteInfo
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/convites/token/" + token)
	if err != nil {
		return nil, fmt.Errorf("consultar convite: %w", err)
	}
	if resp.IsError() {
		return nil, decodeError(resp)
	}
	return &out, nil
}

type sessionBody struct {
	Token               string `json:"token"`
	PendingConfirmation bool   `json:"pending_confirmation"`
	User                struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func (b *sessionBody) session() *Session {
	return &Session{Token: b.Token, ID: b.User.ID, Email: b.User.Email, Role: b.User.Role}
}

// Signup cadastra o usuário. Sem sessão imediata (confirmação de e-mail
// pendente) devolve pending=true e sessão nil.
func (c *APIClient) Signup(ctx context.Context, email, password, nome string) (*Session, bool, error) {
	var out sessionBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password, "nome": nome}).
		SetResult(&out).
		Post("/api/auth/signup")
	if err != nil {
		return nil, false, fmt.Errorf("cadastrar: %w", err)
	}
	if resp.IsError() {
		return nil, false, decodeError(resp)
	}
	if out.PendingConfirmation || out.Token == "" {
		return nil, true, nil
	}
	return out.session(), false, nil
}

// Login autentica o usuário.
func (c *APIClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var out sessionBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("entrar: %w", err)
	}
	if resp.IsError() {
		return nil, decodeError(resp)
	}
	return out.session(), nil
}

// Accept chama a aceitação do convite com a sessão dada.
func (c *APIClient) Accept(ctx context.Context, sess *Session, inviteToken string) (string, error) {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(sess.Token).
		SetBody(map[string]string{"invite_token": inviteToken}).
		SetResult(&out).
		Post("/api/convites/aceitar")
	if err != nil {
		return "", fmt.Errorf("aceitar convite: %w", err)
	}
	if resp.IsError() {
		return "", decodeError(resp)
	}
	return out.Message, nil
}
