package inviteflow

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Estados do fluxo de convite.
type State string

const (
	StateLoadingInvite             State = "loading_invite"
	StateInviteInvalid             State = "invite_invalid"
	StateInviteReady               State = "invite_ready"
	StateSignupPendingConfirmation State = "signup_pending_confirmation"
	StateAcceptInProgress          State = "accept_in_progress"
	StateAccepted                  State = "accepted"
	StateAcceptFailed              State = "accept_failed"
)

// Modos de submissão do formulário.
type Mode string

const (
	ModeSignup Mode = "signup"
	ModeLogin  Mode = "login"
)

// mensagem genérica quando o corpo de erro do servidor não é decodificável.
const genericFailure = "não foi possível concluir a operação"

// Flow dirige um usuário pelo caminho cadastro-ou-entrada-e-aceitação.
// O servidor continua autoritativo: toda checagem local de validade do
// convite é apenas consultiva.
type Flow struct {
	dir      InviteDirectory
	auth     AuthProvider
	acceptor Acceptor
	sessions *SessionStore

	mu        sync.Mutex
	token     string
	invite    *InviteInfo
	state     State
	mode      Mode
	attempted bool // a aceitação automática dispara no máximo uma vez
	message   string
	failure   string
	unsub     func()
}

// NewFlow constrói o fluxo sobre os portos dados e o session store do shell.
func NewFlow(dir InviteDirectory, auth AuthProvider, acceptor Acceptor, sessions *SessionStore) *Flow {
	return &Flow{
		dir:      dir,
		auth:     auth,
		acceptor: acceptor,
		sessions: sessions,
		state:    StateLoadingInvite,
		mode:     ModeSignup,
	}
}

// Load consulta o convite pelo token e arma o caminho automático: se uma
// sessão viva já existe (ou surgir depois, ex.: retorno da confirmação de
// e-mail), a aceitação dispara sozinha, uma única vez.
func (f *Flow) Load(ctx context.Context, token string) {
	f.mu.Lock()
	f.token = token
	f.state = StateLoadingInvite
	f.mu.Unlock()

	if token == "" {
		f.fail(StateInviteInvalid, "convite inválido")
		return
	}
	inv, err := f.dir.Lookup(ctx, token)
	if err != nil {
		f.fail(StateInviteInvalid, failureMessage(err))
		return
	}
	// Checagem consultiva de expiração pelo relógio local.
	if exp, perr := time.Parse(time.RFC3339, inv.ExpiresAt); perr == nil && !time.Now().Before(exp) {
		f.fail(StateInviteInvalid, "convite expirado")
		return
	}

	f.mu.Lock()
	f.invite = inv
	f.state = StateInviteReady
	f.unsub = f.sessions.Subscribe(func(sess *Session) {
		if sess != nil {
			f.accept(context.Background(), sess)
		}
	})
	f.mu.Unlock()

	if sess := f.sessions.Current(); sess != nil {
		f.accept(ctx, sess)
	}
}

// Submit envia o formulário no modo corrente. O e-mail vem sempre do
// convite, nunca do usuário, para não descasar com a validação do servidor.
func (f *Flow) Submit(ctx context.Context, password string) {
	f.mu.Lock()
	inv, mode, state := f.invite, f.mode, f.state
	f.mu.Unlock()
	if inv == nil || state != StateInviteReady {
		return
	}

	switch mode {
	case ModeSignup:
		sess, pending, err := f.auth.Signup(ctx, inv.Email, password, inv.NomeProfissional)
		if err != nil {
			// Identidade já existe: troca para o modo login e espera nova
			// submissão em vez de falhar de forma opaca.
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				f.mu.Lock()
				f.mode = ModeLogin
				f.message = "conta já existe; entre com sua senha"
				f.mu.Unlock()
				return
			}
			f.fail(StateAcceptFailed, failureMessage(err))
			return
		}
		if pending {
			f.mu.Lock()
			f.state = StateSignupPendingConfirmation
			f.message = "confira seu e-mail para confirmar o cadastro"
			f.mu.Unlock()
			return
		}
		f.sessions.Set(sess)
		f.accept(ctx, sess)
	case ModeLogin:
		sess, err := f.auth.Login(ctx, inv.Email, password)
		if err != nil {
			f.fail(StateAcceptFailed, failureMessage(err))
			return
		}
		f.sessions.Set(sess)
		f.accept(ctx, sess)
	}
}

// accept chama o fluxo de aceitação no servidor. Dispara no máximo uma vez
// e nunca tenta de novo sozinho; uma nova tentativa exige ação do usuário.
func (f *Flow) accept(ctx context.Context, sess *Session) {
	f.mu.Lock()
	if f.attempted || f.invite == nil {
		f.mu.Unlock()
		return
	}
	f.attempted = true
	f.state = StateAcceptInProgress
	token := f.token
	f.mu.Unlock()

	msg, err := f.acceptor.Accept(ctx, sess, token)
	if err != nil {
		f.fail(StateAcceptFailed, failureMessage(err))
		return
	}
	f.mu.Lock()
	f.state = StateAccepted
	f.message = msg
	f.mu.Unlock()
}

// Retry rearma a aceitação a pedido explícito do usuário.
func (f *Flow) Retry(ctx context.Context) {
	f.mu.Lock()
	if f.state != StateAcceptFailed {
		f.mu.Unlock()
		return
	}
	f.attempted = false
	f.state = StateInviteReady
	f.mu.Unlock()
	if sess := f.sessions.Current(); sess != nil {
		f.accept(ctx, sess)
	}
}

// Close cancela a assinatura no session store.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unsub != nil {
		f.unsub()
		f.unsub = nil
	}
}

func (f *Flow) fail(state State, msg string) {
	f.mu.Lock()
	f.state = state
	f.failure = msg
	f.mu.Unlock()
}

// State devolve o estado corrente.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Mode devolve o modo corrente do formulário.
func (f *Flow) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Email devolve o e-mail travado do convite, se carregado.
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.invite == nil {
		return ""
	}
	return f.invite.Email
}

// Message devolve a última mensagem informativa.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Failure devolve a última mensagem de falha.
func (f *Flow) Failure() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}

// failureMessage devolve a mensagem estruturada do servidor quando
// extraível; senão, a mensagem genérica.
func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return genericFailure
}
