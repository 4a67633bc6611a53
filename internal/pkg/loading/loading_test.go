package loading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleTracksCounterAtEveryPrefix(t *testing.T) {
	s := NewSignal()

	type step struct {
		on bool
	}

	// Duas operações sobrepostas: o indicador só pode apagar quando a
	// última delas terminar.
	steps := []step{
		{on: true},  // op A começa
		{on: true},  // op B começa
		{on: false}, // op A termina
		{on: true},  // op C começa
		{on: false}, // op B termina
		{on: false}, // op C termina
	}

	pending := 0
	for n, st := range steps {
		if st.on {
			s.On()
			pending++
		} else {
			s.Off()
			pending--
		}

		assert.Equal(t, pending > 0, s.Visible(), "passo %d", n)
	}
}

func TestOverlappingOperationsKeepIndicatorOn(t *testing.T) {
	s := NewSignal()

	s.On()
	s.On()
	s.Off()

	assert.True(t, s.Visible(), "indicador apagou com operação ainda pendente")

	s.Off()
	assert.False(t, s.Visible())
}

func TestOffIsFlooredAtZero(t *testing.T) {
	s := NewSignal()

	s.Off()
	s.Off()
	assert.False(t, s.Visible())

	// Um Off desemparelhado não pode engolir o próximo On.
	s.On()
	assert.True(t, s.Visible())

	s.Off()
	assert.False(t, s.Visible())
}

func TestChangesStreamPublishesVisibility(t *testing.T) {
	s := NewSignal()

	ch, unsubscribe := s.Changes()
	defer unsubscribe()

	s.On()
	assert.True(t, <-ch)

	s.Off()
	assert.False(t, <-ch)
}
