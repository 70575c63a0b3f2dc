package engine

// Notifier surfaces operation outcomes to the operator. It is passed in
// explicitly; the engine never writes to the terminal itself.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Confirmer asks the operator to approve a destructive action before it runs.
type Confirmer interface {
	Confirm(prompt string) bool
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
