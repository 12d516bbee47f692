// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that runs multiple
// workers in a unified way, and the bcrypt hashing pool that keeps
// CPU-bound password work off the request-serving goroutines.
package workers

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to spawn goroutines internally and return,
// or block for the duration of their work.
type Worker interface {
	Run()
}
