package observable

import "sync"

// Value guarda um valor corrente e notifica assinantes a cada alteração.
// A leitura é sempre síncrona; a assinatura entrega pelo canal o valor mais
// recente, conflando atualizações intermediárias quando o consumidor está
// atrasado. Cancelar a assinatura na desmontagem da tela é obrigação do
// consumidor, senão resultados tardios vazam para telas mortas.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[int]chan T
	nextID  int
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int]chan T),
	}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = value
	for _, ch := range v.subs {
		publish(ch, value)
	}
}

// Subscribe devolve o canal de alterações e a função de cancelamento.
// O canal é fechado no cancelamento.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++

	ch := make(chan T, 1)
	v.subs[id] = ch

	unsubscribe := func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if sub, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// publish nunca bloqueia: se o assinante ainda não consumiu a atualização
// anterior, ela é descartada em favor da mais nova.
func publish[T any](ch chan T, value T) {
	select {
	case ch <- value:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- value:
	default:
	}
}
