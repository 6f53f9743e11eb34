package tool

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Call is a request to invoke a tool.
type Call struct {
	// ID correlates the call with its result. If empty, Registry.Call
	// assigns a random one.
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Result is the outcome of a call.
type Result struct {
	CallID string `json:"call_id"`
	Tool   string `json:"tool"`
	Output string `json:"output,omitempty"`
	// Error is the message of an error returned by the tool, if any.
	Error string `json:"error,omitempty"`
}

// Registry holds tools by name and dispatches calls to them. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	log   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger for call events. The default discards them.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry creates a registry containing tools.
func NewRegistry(tools []Tool, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]Tool, len(tools)),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(r)
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default creates a registry with the calculator and unit converter.
func Default(opts ...RegistryOption) *Registry {
	r, err := NewRegistry([]Tool{Calculator(), UnitConverter()}, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// ErrDuplicate is returned when registering a second tool with the same name.
var ErrDuplicate = errors.New("tool already registered")

// Register adds a tool.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := t.Name()
	if _, ok := r.tools[name]; ok {
		return &ToolError{Tool: name, Message: ErrDuplicate.Error(), Code: ValidationError, Details: ErrDuplicate}
	}
	r.tools[name] = t
	return nil
}

// Lookup returns the tool with the given name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns the declarations of all tools, sorted by name.
func (r *Registry) List() []Declaration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d := make([]Declaration, 0, len(r.tools))
	for _, t := range r.tools {
		d = append(d, Declare(t))
	}
	slices.SortFunc(d, func(a, b Declaration) int { return strings.Compare(a.Name, b.Name) })
	return d
}

// Call dispatches c to its tool. The returned error is non-nil exactly when
// the result's Error field is set.
func (r *Registry) Call(ctx context.Context, c Call) (Result, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	res := Result{CallID: c.ID, Tool: c.Name}
	t, ok := r.Lookup(c.Name)
	if !ok {
		err := NewToolError(c.Name, "no such tool", NotFoundError)
		r.log.WarnContext(ctx, "tool.call.not_found", "tool", c.Name, "call_id", c.ID)
		res.Error = err.Error()
		return res, err
	}
	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res, err
	}
	start := time.Now()
	r.log.DebugContext(ctx, "tool.call.start", "tool", c.Name, "call_id", c.ID)
	args := []byte(c.Arguments)
	if len(args) == 0 {
		args = []byte("{}")
	}
	out, err := t.Call(ctx, args)
	if err != nil {
		r.log.ErrorContext(ctx, "tool.call.error", "tool", c.Name, "call_id", c.ID, "error", err.Error())
		res.Error = err.Error()
		return res, err
	}
	r.log.InfoContext(ctx, "tool.call.success", "tool", c.Name, "call_id", c.ID, "duration_ms", time.Since(start).Milliseconds())
	res.Output = out
	return res, nil
}
