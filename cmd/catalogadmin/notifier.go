package main

import (
	"fmt"
	"io"
	"sync"
)

// defaultMessages is the operator-facing message table. A different table can
// be swapped in for another locale.
var defaultMessages = map[string]string{
	"notify.success": "ok: %s",
	"notify.error":   "error: %s",
}

// consoleNotifier prints operation outcomes to the console. It satisfies
// engine.Notifier.
type consoleNotifier struct {
	mu       sync.Mutex
	out      io.Writer
	messages map[string]string
}

func (n *consoleNotifier) Success(message string) {
	n.print("notify.success", message)
}

func (n *consoleNotifier) Error(message string) {
	n.print("notify.error", message)
}

func (n *consoleNotifier) print(key, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	format, ok := n.messages[key]
	if !ok {
		format = "%s"
	}
	fmt.Fprintf(n.out, format+"\n", message)
}
