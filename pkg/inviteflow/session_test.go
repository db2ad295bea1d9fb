package inviteflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendaclin/consultorio-api/pkg/inviteflow"
)

func TestSessionStore_SetCurrentClear(t *testing.T) {
	store := inviteflow.NewSessionStore()
	assert.Nil(t, store.Current())

	sess := &inviteflow.Session{Token: "jwt", ID: "uid", Email: "pro@x.com"}
	store.Set(sess)
	assert.Equal(t, sess, store.Current())

	store.Clear()
	assert.Nil(t, store.Current())
}

func TestSessionStore_SubscribeEUnsubscribe(t *testing.T) {
	store := inviteflow.NewSessionStore()

	var got []*inviteflow.Session
	unsub := store.Subscribe(func(s *inviteflow.Session) {
		got = append(got, s)
	})

	sess := &inviteflow.Session{Token: "jwt"}
	store.Set(sess)
	store.Clear()
	assert.Equal(t, []*inviteflow.Session{sess, nil}, got)

	unsub()
	store.Set(sess)
	assert.Len(t, got, 2, "assinatura cancelada não recebe mais trocas")
}
