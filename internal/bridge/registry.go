package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownCommand is returned by Invoke for command names no handler
// was registered under
var ErrUnknownCommand = errors.New("unknown command")

// HandlerFunc executes one named command. Args hold the JSON-encoded
// named arguments of the call.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Middleware wraps a handler with cross-cutting behavior. The command
// name is fixed at registration time.
type Middleware func(name string, next HandlerFunc) HandlerFunc

// Registry maps command names to handlers
type Registry struct {
	mu         sync.RWMutex
	handlers   map[string]HandlerFunc
	middleware []Middleware
}

// NewRegistry creates an empty command registry with request logging
// installed
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]HandlerFunc)}
	r.Use(loggingMiddleware)
	return r
}

// Use appends a middleware applied to every handler registered after
// this call. Middleware run in registration order, outermost first.
func (r *Registry) Use(mw Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw)
}

// Register binds name to handler. Registering the same name twice is a
// wiring bug and panics.
func (r *Registry) Register(name string, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("bridge: command %q registered twice", name))
	}

	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](name, handler)
	}
	r.handlers[name] = handler
}

// Invoke runs the handler registered under name. Args are marshaled to
// JSON before the call; the handler's result is marshaled back so both
// sides of the bridge only ever exchange JSON.
func (r *Registry) Invoke(ctx context.Context, name string, args any) (json.RawMessage, error) {
	r.mu.RLock()
	handler, exists := r.handlers[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	payload, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode arguments for %s: %w", name, err)
	}

	result, err := handler(ctx, payload)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result of %s: %w", name, err)
	}
	return encoded, nil
}

// CommandNames returns the registered command names, for diagnostics
func (r *Registry) CommandNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// loggingMiddleware logs every command invocation with a request ID
// and duration
func loggingMiddleware(name string, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		reqID := generateRequestID()
		start := time.Now()

		result, err := next(ctx, args)

		if err != nil {
			log.Printf("Command %s failed [%s] after %v: %v", name, reqID, time.Since(start), err)
		} else {
			log.Printf("Command %s completed [%s] in %v", name, reqID, time.Since(start))
		}
		return result, err
	}
}

// generateRequestID creates a unique ID for correlating command logs
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return id.String()
}
