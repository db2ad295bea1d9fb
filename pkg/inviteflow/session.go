// Package inviteflow implementa o lado cliente do fluxo de convite: consulta
// do convite por token, cadastro/entrada e aceitação automática quando uma
// sessão viva é detectada. É usado por shells de aplicação (CLI, testes de
// integração) que precisam dirigir o fluxo sem interface gráfica.
package inviteflow

import "sync"

// Session é a sessão autenticada corrente do usuário.
type Session struct {
	Token string
	ID    string
	Email string
	Role  string
}

// SessionStore guarda a sessão corrente e notifica assinantes a cada troca.
// É um objeto explícito de posse do shell da aplicação; nada aqui é global.
type SessionStore struct {
	mu      sync.Mutex
	current *Session
	nextID  int
	subs    map[int]func(*Session)
}

// NewSessionStore constrói um store vazio.
func NewSessionStore() *SessionStore {
	return &SessionStore{subs: make(map[int]func(*Session))}
}

// Set troca a sessão corrente e notifica os assinantes.
func (s *SessionStore) Set(sess *Session) {
	s.mu.Lock()
	s.current = sess
	subs := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(sess)
	}
}

// Current devolve a sessão corrente, ou nil se não houver.
func (s *SessionStore) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Clear derruba a sessão (logout) e notifica os assinantes com nil.
func (s *SessionStore) Clear() {
	s.Set(nil)
}

// Subscribe registra um callback chamado a cada troca de sessão e devolve
// a função de cancelamento da assinatura.
func (s *SessionStore) Subscribe(fn func(*Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
