package extensions

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	supply "github.com/pumped-fn/supply-go"
)

func TestLoggingExtension(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := supply.NewResolver(
		supply.WithLogger(logger),
		supply.WithExtension(NewLoggingExtension(slog.LevelInfo)),
	)

	if _, err := r.Supply(supply.Fixed(3), "ctx"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"supply starting", "supply completed", "extension=logging", "operation=supply", "contexts=1"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output:\n%s", want, output)
		}
	}

	buf.Reset()
	boom := errors.New("boom")
	if _, err := r.SupplyRecursive(supply.Func(func() (int, error) { return 0, boom })); !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}

	output = buf.String()
	if !strings.Contains(output, "level=ERROR") || !strings.Contains(output, "supply failed") {
		t.Errorf("Expected error log, got:\n%s", output)
	}
	if !strings.Contains(output, "operation=supply-recursive") {
		t.Errorf("Expected recursive operation, got:\n%s", output)
	}
}
