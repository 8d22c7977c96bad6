package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

const spinnerInterval = 100 * time.Millisecond

// spinner animates a status line while a render runs. It stops on its own
// when ctx is cancelled.
type spinner struct {
	w       io.Writer
	message string
	quit    chan struct{}
	exited  chan struct{}
	once    sync.Once
}

// startSpinner draws message to w until stop or fail is called.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	s := &spinner{
		w:       w,
		message: message,
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.exited)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-ticker.C:
		}
	}
}

// stop ends the animation and clears the line. Later calls do nothing.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.exited
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
	})
}

// fail stops the spinner and reports message as an error.
func (s *spinner) fail(message string) {
	s.stop()
	printError("%s", message)
}
