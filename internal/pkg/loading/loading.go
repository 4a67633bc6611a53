package loading

import (
	"sync"

	"github.com/leoalmeida/desafio-fullstack/internal/pkg/observable"
)

// Signal é o indicador global de trabalho assíncrono em andamento.
// Um booleano simples esconderia o spinner cedo demais quando duas operações
// se sobrepõem; por isso o estado é um contador não-negativo: visível
// enquanto houver qualquer operação pendente.
type Signal struct {
	mu      sync.Mutex
	count   int
	visible *observable.Value[bool]
}

func NewSignal() *Signal {
	return &Signal{
		visible: observable.New(false),
	}
}

func (s *Signal) On() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	if s.count == 1 {
		s.visible.Set(true)
	}
}

// Off decrementa o contador, com piso em zero: um Off desemparelhado não pode
// deixar o contador negativo e engolir o On seguinte.
func (s *Signal) Off() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == 0 {
		return
	}

	s.count--
	if s.count == 0 {
		s.visible.Set(false)
	}
}

func (s *Signal) Visible() bool {
	return s.visible.Get()
}

// Changes é o stream booleano consumido pelo spinner.
func (s *Signal) Changes() (<-chan bool, func()) {
	return s.visible.Subscribe()
}
