package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsCurrentValue(t *testing.T) {
	v := New("inicial")

	assert.Equal(t, "inicial", v.Get())

	v.Set("atualizado")
	assert.Equal(t, "atualizado", v.Get())
}

func TestSubscriberReceivesUpdates(t *testing.T) {
	v := New(0)

	ch, unsubscribe := v.Subscribe()
	defer unsubscribe()

	v.Set(42)
	assert.Equal(t, 42, <-ch)
}

func TestSlowSubscriberGetsLatestValue(t *testing.T) {
	v := New(0)

	ch, unsubscribe := v.Subscribe()
	defer unsubscribe()

	// Sem consumidor ativo, atualizações intermediárias são confladas:
	// só a mais recente fica no canal.
	v.Set(1)
	v.Set(2)
	v.Set(3)

	assert.Equal(t, 3, <-ch)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	v := New(false)

	ch, unsubscribe := v.Subscribe()
	unsubscribe()

	_, open := <-ch
	require.False(t, open, "canal deveria fechar no cancelamento")

	// Cancelar duas vezes é inofensivo.
	unsubscribe()

	// Publicar depois do cancelamento não pode entregar nada nem travar.
	v.Set(true)
}

func TestIndependentSubscribers(t *testing.T) {
	v := New("")

	first, unsubFirst := v.Subscribe()
	second, unsubSecond := v.Subscribe()
	defer unsubSecond()

	v.Set("a")
	assert.Equal(t, "a", <-first)
	assert.Equal(t, "a", <-second)

	unsubFirst()

	v.Set("b")
	assert.Equal(t, "b", <-second)
}
