package inviteflow_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclin/consultorio-api/pkg/inviteflow"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes dos portos
// ──────────────────────────────────────────────────────────────────────────────

type fakeDirectory struct {
	info *inviteflow.InviteInfo
	err  error
}

func (f *fakeDirectory) Lookup(ctx context.Context, token string) (*inviteflow.InviteInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

type fakeAuth struct {
	signupSess    *inviteflow.Session
	signupPending bool
	signupErr     error
	loginSess     *inviteflow.Session
	loginErr      error
}

func (f *fakeAuth) Signup(ctx context.Context, email, password, nome string) (*inviteflow.Session, bool, error) {
	return f.signupSess, f.signupPending, f.signupErr
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*inviteflow.Session, error) {
	return f.loginSess, f.loginErr
}

type fakeAcceptor struct {
	mu    sync.Mutex
	msg   string
	err   error
	calls int
}

func (f *fakeAcceptor) Accept(ctx context.Context, sess *inviteflow.Session, inviteToken string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.msg, nil
}

func (f *fakeAcceptor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func validInvite() *inviteflow.InviteInfo {
	return &inviteflow.InviteInfo{
		Email:            "pro@x.com",
		NomeProfissional: "Dr. Ana",
		CorIdentificacao: "#3b82f6",
		Status:           "pendente",
		ExpiresAt:        time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso: convite válido carrega e trava o e-mail do formulário.
func TestFlow_LoadConviteValido(t *testing.T) {
	flow := inviteflow.NewFlow(
		&fakeDirectory{info: validInvite()},
		&fakeAuth{},
		&fakeAcceptor{},
		inviteflow.NewSessionStore(),
	)
	defer flow.Close()

	flow.Load(context.Background(), "abc123")
	assert.Equal(t, inviteflow.StateInviteReady, flow.State())
	assert.Equal(t, "pro@x.com", flow.Email())
	assert.Equal(t, inviteflow.ModeSignup, flow.Mode())
}

// Caso: convite inexistente mostra a tela de convite inválido com a mensagem
// estruturada do servidor.
func TestFlow_LoadConviteInexistente(t *testing.T) {
	flow := inviteflow.NewFlow(
		&fakeDirectory{err: &inviteflow.APIError{Status: http.StatusNotFound, Message: "convite não encontrado ou já utilizado"}},
		&fakeAuth{},
		&fakeAcceptor{},
		inviteflow.NewSessionStore(),
	)
	defer flow.Close()

	flow.Load(context.Background(), "xyz")
	assert.Equal(t, inviteflow.StateInviteInvalid, flow.State())
	assert.Equal(t, "convite não encontrado ou já utilizado", flow.Failure())
}

// Caso: erro sem corpo decodificável cai na mensagem genérica.
func TestFlow_ErroSemCorpoUsaMensagemGenerica(t *testing.T) {
	flow := inviteflow.NewFlow(
		&fakeDirectory{err: context.DeadlineExceeded},
		&fakeAuth{},
		&fakeAcceptor{},
		inviteflow.NewSessionStore(),
	)
	defer flow.Close()

	flow.Load(context.Background(), "abc123")
	assert.Equal(t, inviteflow.StateInviteInvalid, flow.State())
	assert.NotEmpty(t, flow.Failure())
	assert.NotContains(t, flow.Failure(), "deadline")
}

// Caso: expiração pelo relógio local é checada de forma consultiva no load.
func TestFlow_LoadConviteVencidoLocalmente(t *testing.T) {
	inv := validInvite()
	inv.ExpiresAt = time.Now().Add(-time.Hour).Format(time.RFC3339)
	flow := inviteflow.NewFlow(
		&fakeDirectory{info: inv},
		&fakeAuth{},
		&fakeAcceptor{},
		inviteflow.NewSessionStore(),
	)
	defer flow.Close()

	flow.Load(context.Background(), "abc123")
	assert.Equal(t, inviteflow.StateInviteInvalid, flow.State())
}

// Caso: cadastro com sessão imediata emenda direto na aceitação.
func TestFlow_SignupComSessaoImediata(t *testing.T) {
	sess := &inviteflow.Session{Token: "jwt", ID: "uid", Email: "pro@x.com"}
	acceptor := &fakeAcceptor{msg: "Convite aceito com sucesso"}
	store := inviteflow.NewSessionStore()
	flow := inviteflow.NewFlow(
		&fakeDirectory{info: validInvite()},
		&fakeAuth{signupSess: sess},
		acceptor,
		store,
	)
	defer flow.Close()

	flow.Load(context.Background(), "abc123")
	flow.Submit(context.Background(), "senha-forte")

	assert.Equal(t, inviteflow.StateAccepted, flow.State())
	assert.Equal(t, "Convite aceito com sucesso", flow.Message())
	assert.Equal(t, 1, acceptor.callCount(), "a aceitação dispara uma única vez")
	assert.Equal(t, sess, store.Current())
}

// Caso: cadastro com confirmação de e-mail pendente para sem aceitar; quando
// a sessão surge (retorno da confirmação), o caminho automático dispara.
func TestFlow_SignupPendenteDepoisAutoAceita(t *testing.T) {
	acceptor := &fakeAcceptor{msg: "ok"}
	store := inviteflow.NewSessionStore()
	flow := inviteflow.NewFlow(
		&fakeDirectory{info: validInvite()},
		&fakeAuth{signupPending: true},
		acceptor,
		store,
	)
	defer flow.Close()

	flow.Load(context.Background(), "abc123")
	flow.Submit(context.Background(), "senha-forte")
	assert.Equal(t, inviteflow.StateSignupPendingConfirmation, flow.State())
	assert.Equal(t, 0, acceptor.callCount())

	// Sessão chega por outro caminho (confirmação em outra aba).
	store.Set(&inviteflow.Session{Token: "jwt", ID: "uid", Email: "pro@x.com"})
	assert.Equal(t, inviteflow.StateAccepted, flow.State())
	assert.Equal(t, 1, acceptor.callCount())
}

// Caso: identidade já existe (409): o fluxo troca para o modo login e espera
// nova submissão em vez de falhar.
func TestFlow_SignupExistenteTrocaParaLogin(t *testing.T) {
	sess := &inviteflow.Session{Token: "jwt", ID: "uid", Email: "pro@x.com"}
	acceptor := &fakeAcceptor{msg: "ok"}
	flow := inviteflow.NewFlow(
		&fakeDirectory{info: validInvite()},
		&fakeAuth{
			signupErr: &inviteflow.APIError{Status: http.StatusConflict, Message: "e-mail já cadastrado"},
			loginSess: sess,
		},
		acceptor,
		inviteflow.NewSessionStore(),
	)
	defer flow.Close()

	flow.Load(context.Background(), "abc123")
	flow.Submit(context.Background(), "senha-forte")
	assert.Equal(t, inviteflow.ModeLogin, flow.Mode())
	assert.Equal(t, inviteflow.StateInviteReady, flow.State())

	flow.Submit(context.Background(), "senha-forte")
	assert.Equal(t, inviteflow.StateAccepted, flow.State())
}

// Caso: sessão viva já presente no load dispara a aceitação sozinha, no
// máximo uma vez por carga.
func TestFlow_AutoAceitaComSessaoViva(t *testing.T) {
	acceptor := &fakeAcceptor{msg: "ok"}
	store := inviteflow.NewSessionStore()
	store.Set(&inviteflow.Session{Token: "jwt", ID: "uid", Email: "pro@x.com"})

	flow := inviteflow.NewFlow(
		&fakeDirectory{info: validInvite()},
		&fakeAuth{},
		acceptor,
		store,
	)
	defer flow.Close()

	flow.Load(context.Background(), "abc123")
	assert.Equal(t, inviteflow.StateAccepted, flow.State())
	assert.Equal(t, 1, acceptor.callCount())

	// Uma nova troca de sessão não dispara de novo.
	store.Set(&inviteflow.Session{Token: "jwt2", ID: "uid", Email: "pro@x.com"})
	assert.Equal(t, 1, acceptor.callCount())
}

// Caso: falha na aceitação mostra a mensagem do servidor e nunca tenta de
// novo sozinha; Retry rearma a pedido do usuário.
func TestFlow_FalhaNaAceitacaoNaoRepeteSozinha(t *testing.T) {
	acceptor := &fakeAcceptor{err: &inviteflow.APIError{Status: http.StatusForbidden, Message: "convite emitido para outro e-mail"}}
	store := inviteflow.NewSessionStore()
	store.Set(&inviteflow.Session{Token: "jwt", ID: "uid", Email: "other@x.com"})

	flow := inviteflow.NewFlow(
		&fakeDirectory{info: validInvite()},
		&fakeAuth{},
		acceptor,
		store,
	)
	defer flow.Close()

	flow.Load(context.Background(), "abc123")
	assert.Equal(t, inviteflow.StateAcceptFailed, flow.State())
	assert.Equal(t, "convite emitido para outro e-mail", flow.Failure())
	require.Equal(t, 1, acceptor.callCount())

	// Só a ação explícita do usuário tenta de novo.
	acceptor.err = nil
	flow.Retry(context.Background())
	assert.Equal(t, inviteflow.StateAccepted, flow.State())
	assert.Equal(t, 2, acceptor.callCount())
}
