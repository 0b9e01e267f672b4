package objstm

import (
	"log/slog"
	"testing"
)

func TestLimitsWithDefaults(t *testing.T) {
	l := (Limits{}).withDefaults()
	if l.MaxDecompressedLen == 0 || l.MaxNestingDepth == 0 {
		t.Fatal("expected defaults")
	}

	custom := Limits{MaxNestingDepth: 7}
	custom = custom.withDefaults()
	if custom.MaxNestingDepth != 7 {
		t.Fatalf("expected custom MaxNestingDepth, got %d", custom.MaxNestingDepth)
	}
	if custom.MaxDecompressedLen != DefaultLimits().MaxDecompressedLen {
		t.Fatalf("expected default MaxDecompressedLen, got %d", custom.MaxDecompressedLen)
	}
}

func TestReadConfigDefaults(t *testing.T) {
	cfg := newReadConfig([]ReadOption{WithConcurrency(-3), WithLogger(nil)})
	if cfg.concurrency != 1 {
		t.Fatalf("expected concurrency 1, got %d", cfg.concurrency)
	}
	if cfg.logger != slog.Default() {
		t.Fatal("expected default logger")
	}
}

func TestBuildConfigOptions(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	cfg, err := newBuildConfig([]BuildOption{
		WithConfig(Config{MaxObjectsPerStream: 5, CompressionLevel: 1}),
		WithCompressionLevel(0),
		WithFilter(FilterBrotli),
		WithBuildLogger(logger),
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxObjectsPerStream != 5 || cfg.CompressionLevel != 0 || cfg.filter != FilterBrotli || cfg.logger != logger {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestKindNames(t *testing.T) {
	cases := map[Object]string{
		Null{}:         "null",
		Integer(1):     "integer",
		Name("x"):      "name",
		Ref(1):         "reference",
		Boolean(false): "boolean",
	}
	for obj, want := range cases {
		if got := obj.Kind().String(); got != want {
			t.Fatalf("%T: got %q want %q", obj, got, want)
		}
	}
	if Kind(200).String() != "unknown" {
		t.Fatal("expected unknown")
	}
}
