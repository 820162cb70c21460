package extensions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/m1gwings/treedrawer/tree"

	supply "github.com/pumped-fn/supply-go"
)

// GraphDebugExtension logs the composition of a failing supplier as a tree.
//
// Usage:
//
//	// Human-readable formatted output (with line breaks)
//	handler := extensions.NewHumanHandler(os.Stdout, slog.LevelError)
//	ext := extensions.NewGraphDebugExtension(handler)
//
//	// Structured JSON logging (compact, machine-readable)
//	handler := slog.NewJSONHandler(os.Stdout, nil)
//	ext := extensions.NewGraphDebugExtension(handler)
//
//	// Silent (for testing)
//	ext := extensions.NewGraphDebugExtension(extensions.NewSilentHandler())
//
// Suppliers that resolved through the extension's resolver are marked ✓,
// failed ones ❌.
type GraphDebugExtension struct {
	supply.BaseExtension

	mu        sync.Mutex
	supplied  map[supply.AnySupplier]bool
	failed    map[supply.AnySupplier]error
	logger    *slog.Logger
	maxLevels int
}

// NewGraphDebugExtension creates a new graph debug extension.
// logHandler: slog.Handler for logging (use HumanHandler for formatted output, or any other slog.Handler)
func NewGraphDebugExtension(logHandler slog.Handler) *GraphDebugExtension {
	return &GraphDebugExtension{
		BaseExtension: supply.NewBaseExtension("graph-debug"),
		supplied:      make(map[supply.AnySupplier]bool),
		failed:        make(map[supply.AnySupplier]error),
		logger:        slog.New(logHandler),
		maxLevels:     16,
	}
}

// Wrap records the outcome of each resolution
func (e *GraphDebugExtension) Wrap(ctx context.Context, next func() (any, error), op *supply.Operation) (any, error) {
	result, err := next()

	if trackable(op.Supplier) {
		e.mu.Lock()
		if err == nil {
			e.supplied[op.Supplier] = true
		} else {
			e.failed[op.Supplier] = err
		}
		e.mu.Unlock()
	}

	return result, err
}

// OnError logs the supplier tree when resolution fails
func (e *GraphDebugExtension) OnError(err error, op *supply.Operation, r *supply.Resolver) {
	contexts := make([]string, len(op.Contexts))
	for i, c := range op.Contexts {
		contexts[i] = fmt.Sprintf("%T", c)
	}

	e.logger.Error("Supply Error",
		"supplier", supply.Describe(op.Supplier),
		"error", err.Error(),
		"operation", string(op.Kind),
		"contexts", strings.Join(contexts, ", "),
		"supplier_tree", e.render(op.Supplier),
	)
}

func (e *GraphDebugExtension) render(s supply.AnySupplier) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return renderTree(s, e.maxLevels, func(s supply.AnySupplier) string {
		if !trackable(s) {
			return ""
		}
		if e.supplied[s] {
			return " ✓"
		}
		if _, failed := e.failed[s]; failed {
			return " ❌"
		}
		return ""
	})
}

// RenderSupplierTree draws s and the suppliers it is composed of, as
// reported by supply.Composite.
func RenderSupplierTree(s supply.AnySupplier) string {
	return renderTree(s, 16, func(supply.AnySupplier) string { return "" })
}

func renderTree(s supply.AnySupplier, maxLevels int, mark func(supply.AnySupplier) string) string {
	if supply.IsNil(s) {
		return "(no supplier)"
	}
	root := tree.NewTree(tree.NodeString(supply.Describe(s) + mark(s)))
	addChildren(root, s, 1, maxLevels, map[supply.AnySupplier]bool{}, mark)
	return root.String()
}

func addChildren(t *tree.Tree, s supply.AnySupplier, level, maxLevels int, path map[supply.AnySupplier]bool, mark func(supply.AnySupplier) string) {
	composite, ok := s.(supply.Composite)
	if !ok {
		return
	}
	if trackable(s) {
		path[s] = true
		defer delete(path, s)
	}

	for _, child := range composite.Suppliers() {
		if supply.IsNil(child) {
			continue
		}
		label := supply.Describe(child) + mark(child)
		switch {
		case trackable(child) && path[child]:
			t.AddChild(tree.NodeString(label + " (cycle)"))
		case level >= maxLevels:
			t.AddChild(tree.NodeString(label + " ..."))
		default:
			addChildren(t.AddChild(tree.NodeString(label)), child, level+1, maxLevels, path, mark)
		}
	}
}

// trackable reports whether s can be used as a map key.
func trackable(s supply.AnySupplier) bool {
	return s != nil && reflect.TypeOf(s).Comparable()
}

// SilentHandler is a slog.Handler that discards all log output
// Useful for testing when you don't want log output
type SilentHandler struct{}

// NewSilentHandler creates a new silent log handler
func NewSilentHandler() *SilentHandler {
	return &SilentHandler{}
}

func (h *SilentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false
}

func (h *SilentHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil
}

func (h *SilentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *SilentHandler) WithGroup(name string) slog.Handler {
	return h
}

// HumanHandler is a slog.Handler that formats logs for human readability
// with proper line breaks and visual formatting (especially for supplier trees)
type HumanHandler struct {
	writer io.Writer
	level  slog.Level
}

// NewHumanHandler creates a new human-readable log handler
func NewHumanHandler(writer io.Writer, level slog.Level) *HumanHandler {
	return &HumanHandler{
		writer: writer,
		level:  level,
	}
}

func (h *HumanHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *HumanHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Message == "Supply Error" {
		return h.handleSupplyError(record)
	}

	if _, err := fmt.Fprintf(h.writer, "[%s] %s\n", record.Level, record.Message); err != nil {
		return err
	}
	var writeErr error
	record.Attrs(func(a slog.Attr) bool {
		if _, err := fmt.Fprintf(h.writer, "  %s: %v\n", a.Key, a.Value); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	return writeErr
}

func (h *HumanHandler) handleSupplyError(record slog.Record) error {
	var supplier, errorMsg, operation, contexts, supplierTree string

	record.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "supplier":
			supplier = a.Value.String()
		case "error":
			errorMsg = a.Value.String()
		case "operation":
			operation = a.Value.String()
		case "contexts":
			contexts = a.Value.String()
		case "supplier_tree":
			supplierTree = a.Value.String()
		}
		return true
	})

	writes := []func() error{
		func() error { _, err := fmt.Fprintln(h.writer); return err },
		func() error { _, err := fmt.Fprintln(h.writer, strings.Repeat("=", 70)); return err },
		func() error { _, err := fmt.Fprintln(h.writer, "[GraphDebug] Supply Error"); return err },
		func() error { _, err := fmt.Fprintln(h.writer, strings.Repeat("=", 70)); return err },
		func() error { _, err := fmt.Fprintf(h.writer, "\nFailed Supplier: %s\n", supplier); return err },
		func() error { _, err := fmt.Fprintf(h.writer, "Error: %s\n", errorMsg); return err },
		func() error { _, err := fmt.Fprintf(h.writer, "Operation: %s\n", operation); return err },
		func() error { _, err := fmt.Fprintf(h.writer, "Contexts: [%s]\n", contexts); return err },
		func() error { _, err := fmt.Fprintf(h.writer, "\nSupplier Tree:\n%s\n", supplierTree); return err },
		func() error { _, err := fmt.Fprintln(h.writer, strings.Repeat("=", 70)); return err },
		func() error { _, err := fmt.Fprintln(h.writer); return err },
	}

	for _, write := range writes {
		if err := write(); err != nil {
			return err
		}
	}

	return nil
}

func (h *HumanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *HumanHandler) WithGroup(name string) slog.Handler {
	return h
}
