package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	deliveryout "ridelog/internal/modules/delivery/adapter/out"
)

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	store := deliveryout.NewFileManifestStore(filepath.Join(t.TempDir(), "deliverers.json"))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	raw := `[
  {
    "name": "filedrop",
    "version": "1.0.0",
    "binary": "plugins/filedrop/filedrop-deliverer",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "capabilities": ["deliver"]
  }
]`
	if err := os.WriteFile(filepath.Join(base, "deliverers.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write deliverers.json: %v", err)
	}
	store := deliveryout.NewFileManifestStore(filepath.Join(base, "deliverers.json"))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	if !filepath.IsAbs(manifests[0].Binary) {
		t.Fatalf("expected absolute binary path, got %s", manifests[0].Binary)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	raw := `[
  {
    "name": "filedrop",
    "version": "1.0.0",
    "binary": "/tmp/filedrop-deliverer",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "capabilities": ["deliver"],
    "unknown_field": true
  }
]`
	if err := os.WriteFile(filepath.Join(base, "deliverers.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write deliverers.json: %v", err)
	}
	store := deliveryout.NewFileManifestStore(filepath.Join(base, "deliverers.json"))
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
