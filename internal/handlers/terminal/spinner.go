package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type loadingChanges interface {
	Changes() (<-chan bool, func())
}

// Spinner é o indicador visual de trabalho em andamento: assina o stream do
// Loading Signal e anima enquanto ele estiver visível. Vive numa goroutine
// própria durante toda a vida do console.
type Spinner struct {
	signal loadingChanges
	out    io.Writer
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewSpinner(signal loadingChanges, out io.Writer) *Spinner {
	return &Spinner{
		signal: signal,
		out:    out,
		done:   make(chan struct{}),
	}
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *Spinner) Start() {
	ch, unsubscribe := s.signal.Changes()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer unsubscribe()

		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		paint := color.New(color.FgCyan)
		visible := false
		frame := 0

		for {
			select {
			case <-s.done:
				if visible {
					s.clearLine()
				}
				return

			case v, ok := <-ch:
				if !ok {
					return
				}
				if visible && !v {
					s.clearLine()
				}
				visible = v

			case <-ticker.C:
				if !visible {
					continue
				}
				fmt.Fprintf(s.out, "\r%s carregando...", paint.Sprint(frames[frame%len(frames)]))
				frame++
			}
		}
	}()
}

func (s *Spinner) Stop() {
	close(s.done)
	s.wg.Wait()
}

func (s *Spinner) clearLine() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", 20))
}
