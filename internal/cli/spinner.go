package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerTick = 80 * time.Millisecond
	// Elapsed time is shown once a layout or plan runs longer than this.
	spinnerShowElapsed = time.Second
)

// Spinner animates a status line while a layout, plan or render runs. It
// stops on its own when ctx is cancelled.
type Spinner struct {
	out     io.Writer
	message string
	start   time.Time

	ctx      context.Context
	cancel   context.CancelFunc
	stopped  chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	width int // widest line written, for clearing
}

func newSpinner(ctx context.Context, out io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     out,
		message: message,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.start = time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	line := s.message
	if d := time.Since(s.start); d >= spinnerShowElapsed {
		line = fmt.Sprintf("%s (%s)", s.message, d.Round(100*time.Millisecond))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(line)+2)
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(line))
}

// Stop halts the animation, clears the line and returns how long the
// spinner ran. Only the first call waits for the animation to end.
func (s *Spinner) Stop() time.Duration {
	if s.start.IsZero() {
		s.cancel()
		return 0
	}
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.stopped
	})
	return time.Since(s.start)
}

// StopWithError stops the spinner and reports the failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	}
}
