package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Spinner shows progress on a terminal while a render runs. On anything other
// than a terminal it draws nothing.
type Spinner struct {
	message string
	out     io.Writer
	tty     bool
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	frames  []string
	mu      sync.Mutex
}

// newSpinner creates a spinner on stderr that stops when ctx is cancelled.
func newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, out io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd())
	}
	return &Spinner{
		message: message,
		out:     out,
		tty:     tty,
		parent:  ctx,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				if !s.tty {
					continue
				}
				frame := s.frames[i%len(s.frames)]
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop stops the spinner and clears the line. It must follow Start and may
// be called more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.cancel()
	})
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	if !s.tty {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Cancelled reports whether the context the spinner was created with was
// cancelled. Stop alone does not count.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
