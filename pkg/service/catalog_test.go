// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalogFile(t, `
rewards:
  - Ionized Coil
  - Flux Capacitor
  - Drift Core
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog.Rewards) != 3 {
		t.Fatalf("Rewards len = %d, expected 3", len(catalog.Rewards))
	}
	if catalog.Rewards[0] != "Ionized Coil" {
		t.Errorf("Rewards[0] = %q, order must be preserved", catalog.Rewards[0])
	}
}

func TestLoadCatalog_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_REWARD_NAME", "Quantum Spool")
	path := writeCatalogFile(t, `
rewards:
  - ${TEST_REWARD_NAME}
  - ${TEST_MISSING_REWARD:Fallback Widget}
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if catalog.Rewards[0] != "Quantum Spool" {
		t.Errorf("Rewards[0] = %q, expected env value", catalog.Rewards[0])
	}
	if catalog.Rewards[1] != "Fallback Widget" {
		t.Errorf("Rewards[1] = %q, expected default value", catalog.Rewards[1])
	}
}

func TestLoadCatalog_EmptyIsAllowed(t *testing.T) {
	path := writeCatalogFile(t, "rewards: []\n")

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog.Rewards) != 0 {
		t.Errorf("Rewards len = %d, expected 0", len(catalog.Rewards))
	}
}

func TestLoadCatalog_BlankEntryRejected(t *testing.T) {
	path := writeCatalogFile(t, "rewards:\n  - \"  \"\n")

	if _, err := LoadCatalog(path); err == nil {
		t.Error("LoadCatalog() accepted a blank reward name")
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadCatalog() succeeded on a missing file")
	}
}
