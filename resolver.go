package supply

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/pumped-fn/supply-go/internal/ctxlog"
	"github.com/pumped-fn/supply-go/pkg/config"
)

// Resolver resolves suppliers against candidate contexts.
type Resolver struct {
	maxDepth   int
	logger     *slog.Logger
	extensions []Extension
}

// ResolverOption is a modifier for resolvers
type ResolverOption func(*Resolver)

// WithMaxDepth bounds how many nested suppliers SupplyRecursive unwraps.
// Non-positive values are ignored.
func WithMaxDepth(depth int) ResolverOption {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConfig applies a loaded configuration. The logger writes to stderr.
func WithConfig(cfg config.Config) ResolverOption {
	return func(r *Resolver) {
		WithMaxDepth(cfg.MaxDepth)(r)
		r.logger = cfg.NewLogger(os.Stderr)
	}
}

// WithExtension returns an option that registers an extension to a resolver
func WithExtension(ext Extension) ResolverOption {
	return func(r *Resolver) {
		if err := r.UseExtension(ext); err != nil {
			panic(err)
		}
	}
}

// NewResolver creates a resolver with optional configuration
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		maxDepth: config.DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

var defaultResolver = NewResolver()

// Default returns the resolver used by the package-level functions.
func Default() *Resolver {
	return defaultResolver
}

// UseExtension registers an extension to the resolver
func (r *Resolver) UseExtension(ext Extension) error {
	if err := ext.Init(r); err != nil {
		return fmt.Errorf("initializing extension %s: %w", ext.Name(), err)
	}
	r.extensions = append(r.extensions, ext)
	sort.SliceStable(r.extensions, func(i, j int) bool {
		return r.extensions[i].Order() < r.extensions[j].Order()
	})
	return nil
}

// MaxDepth returns the recursion limit of SupplyRecursive.
func (r *Resolver) MaxDepth() int {
	return r.maxDepth
}

// Logger returns the resolver's logger.
func (r *Resolver) Logger() *slog.Logger {
	return r.logger
}

// Supply resolves s once against contexts. A non-contextual supplier ignores
// contexts; a contextual one receives the first accepted candidate as owner
// and the full candidate list as auxiliary contexts. An empty supplier
// resolves to nil.
func (r *Resolver) Supply(s AnySupplier, contexts ...any) (any, error) {
	return r.run(OpSupply, s, contexts, func() (any, error) {
		return r.supplyOnce(s, contexts)
	})
}

// SupplyRecursive resolves s and keeps resolving while the produced value is
// itself a supplier, reusing the same candidate contexts at every level.
func (r *Resolver) SupplyRecursive(s AnySupplier, contexts ...any) (any, error) {
	return r.run(OpSupplyRecursive, s, contexts, func() (any, error) {
		return r.supplyRecursive(s, contexts)
	})
}

func (r *Resolver) run(kind OperationKind, s AnySupplier, contexts []any, resolve func() (any, error)) (any, error) {
	if len(r.extensions) == 0 {
		return resolve()
	}

	op := &Operation{
		Kind:     kind,
		Supplier: s,
		Contexts: contexts,
		Resolver: r,
	}
	ctx := ctxlog.WithLogger(context.Background(), r.logger)

	// Chain extensions (middleware pattern)
	next := resolve
	for i := len(r.extensions) - 1; i >= 0; i-- {
		ext := r.extensions[i]
		currentNext := next
		next = func() (any, error) {
			return ext.Wrap(ctx, currentNext, op)
		}
	}

	result, err := next()
	if err != nil {
		for _, ext := range r.extensions {
			ext.OnError(err, op, r)
		}
		return nil, err
	}
	return result, nil
}

func (r *Resolver) supplyOnce(s AnySupplier, contexts []any) (any, error) {
	if IsNil(s) {
		return nil, nilSupplier()
	}

	var (
		v       any
		present bool
		err     error
	)

	contextual, ok := s.(AnyContextual)
	switch {
	case !ok:
		v, present, err = s.SupplyAny()
	case contextual.ContextType() == UnitType:
		v, present, err = contextual.SupplyAnyWith(Unit{}, contexts...)
	default:
		owner, found := MatchContext(contextual, contexts)
		if !found {
			return nil, noCompatibleContext(contextual.ContextType(), contexts)
		}
		if r.logger.Enabled(context.Background(), slog.LevelDebug) {
			r.logger.Debug("context matched",
				"supplier", Describe(s),
				"context", fmt.Sprintf("%T", owner))
		}
		v, present, err = contextual.SupplyAnyWith(owner, contexts...)
	}

	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return v, nil
}

func (r *Resolver) supplyRecursive(s AnySupplier, contexts []any) (any, error) {
	current := s
	for depth := 0; depth < r.maxDepth; depth++ {
		v, err := r.supplyOnce(current, contexts)
		if err != nil {
			return nil, err
		}
		next, ok := v.(AnySupplier)
		if !ok {
			if r.logger.Enabled(context.Background(), slog.LevelDebug) {
				r.logger.Debug("supplier resolved", "supplier", Describe(s), "depth", depth)
			}
			return v, nil
		}
		if IsNil(next) {
			return nil, nil
		}
		current = next
	}
	return nil, &SupplyError{
		Message: fmt.Sprintf("supplier %s exceeded max resolution depth %d", Describe(s), r.maxDepth),
		Kind:    ErrMaxDepthExceeded,
	}
}

// ContextualSupply resolves s once with the default resolver.
func ContextualSupply(s AnySupplier, contexts ...any) (any, error) {
	return defaultResolver.Supply(s, contexts...)
}

// ContextualRecursiveSupply resolves s and every supplier it produces with the
// default resolver.
func ContextualRecursiveSupply(s AnySupplier, contexts ...any) (any, error) {
	return defaultResolver.SupplyRecursive(s, contexts...)
}

// Resolve resolves s with the default resolver and asserts the result to T.
func Resolve[T any](s AnySupplier, contexts ...any) (T, error) {
	return ResolveWith[T](defaultResolver, s, contexts...)
}

// ResolveRecursive unwraps nested suppliers with the default resolver and
// asserts the terminal value to T.
func ResolveRecursive[T any](s AnySupplier, contexts ...any) (T, error) {
	return ResolveRecursiveWith[T](defaultResolver, s, contexts...)
}

// ResolveWith resolves s with r and asserts the result to T.
func ResolveWith[T any](r *Resolver, s AnySupplier, contexts ...any) (T, error) {
	v, err := r.Supply(s, contexts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return SafeTypeAssertion[T](v)
}

// ResolveRecursiveWith unwraps nested suppliers with r and asserts the
// terminal value to T.
func ResolveRecursiveWith[T any](r *Resolver, s AnySupplier, contexts ...any) (T, error) {
	v, err := r.SupplyRecursive(s, contexts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return SafeTypeAssertion[T](v)
}
