package server

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// maxConsoleMessages is how many recent messages /api/console keeps
const maxConsoleMessages = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log
	log.Printf("[%s] %s", wl.renderID, strings.TrimSuffix(message, "\n"))

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// console keeps the most recent messages from every render
type console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
}

// collect drains ch until it is closed or done is
func (c *console) collect(ch <-chan ConsoleMessage, done <-chan struct{}) {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			c.add(msg)
		case <-done:
			return
		}
	}
}

func (c *console) add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if len(c.messages) > maxConsoleMessages {
		c.messages = c.messages[len(c.messages)-maxConsoleMessages:]
	}
}

// recent returns a copy of the stored messages, oldest first. It is never nil.
func (c *console) recent() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages := make([]ConsoleMessage, len(c.messages))
	copy(messages, c.messages)
	return messages
}
