package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler manages graceful shutdown with friendly messages.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	sigChan     chan os.Signal
	message     string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler that prints message
// when the user interrupts.
func NewInterruptHandler(writer io.Writer, message string) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer:  writer,
		message: message,
	}
}

// HandleInterrupts sets up signal handling and returns a context that will be canceled on interrupt.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	h.cancelFunc = cancel

	h.sigChan = make(chan os.Signal, 1)
	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-h.sigChan:
			h.Interrupt()
		case <-ctx.Done():
		}
	}()

	return ctx
}

// Interrupt cancels the handled context and shows the message once.
func (h *InterruptHandler) Interrupt() {
	h.mu.Lock()
	if !h.interrupted {
		h.interrupted = true
		h.showInterruptMessage()
	}
	h.mu.Unlock()

	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

// Stop releases signal handling and the derived context.
func (h *InterruptHandler) Stop() {
	if h.sigChan != nil {
		signal.Stop(h.sigChan)
	}
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

// showInterruptMessage displays a friendly interrupt message.
func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n" + FormatWarning(h.message) + "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		// Best effort - we're shutting down anyway
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
