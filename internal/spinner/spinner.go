package spinner

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/eduardofuncao/pgx/internal/styles"
)

const tick = 100 * time.Millisecond

var stages = []string{" ", ".", "o", "O", "@", "*"}

// CircleWaitWithTimer draws a pulsing spinner and the elapsed time on w
// until done receives, then clears the line.
func CircleWaitWithTimer(w io.Writer, done chan struct{}) {
	var passed time.Duration
	for {
		for _, s := range stages {
			select {
			case <-done:
				fmt.Fprint(w, "\r\033[K")
				return
			default:
				fmt.Fprintf(w, "\r%s %.2fs", styles.Success.Render(s), passed.Seconds())
				passed += tick
				time.Sleep(tick)
			}
		}
	}
}

// Start runs the spinner on f when f is a terminal. The returned function
// stops it and returns once the line is cleared.
func Start(f *os.File) (stop func()) {
	if !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	done := make(chan struct{})
	go CircleWaitWithTimer(f, done)
	return func() {
		done <- struct{}{}
	}
}
