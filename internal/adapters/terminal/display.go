package terminal

import (
	"fmt"
	"io"
	"sync"
)

// Display renders the latest answer and remembers it.
type Display struct {
	mu      sync.Mutex
	w       io.Writer
	current string
}

func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

func (d *Display) ShowAnswer(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = text
	_, _ = fmt.Fprintf(d.w, "answer: %s\n", text)
}

func (d *Display) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}
