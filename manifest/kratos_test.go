package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadKratosFile_HappyPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bootstrap.json")
	doc := `{
		"wasplug": {
			"contracts": [{
				"id": "000102030405060708090a0b0c0d0e0f",
				"package_name": "demo",
				"cardinality": "exactly-one",
				"functions": [{"name": "greet", "return": "no-resources"}]
			}],
			"plugins": [{
				"id": "0f0e0d0c0b0a09080706050403020100",
				"plug": "000102030405060708090a0b0c0d0e0f",
				"wasm_path": "demo.wasm"
			}]
		}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	contracts, plugins, err := LoadKratosFile(path, "wasplug", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contracts) != 1 || len(plugins) != 1 {
		t.Fatalf("expected 1 contract and 1 plugin, got %d/%d", len(contracts), len(plugins))
	}
}

func TestLoadKratosFile_NonexistentPath(t *testing.T) {
	if _, _, err := LoadKratosFile("/nonexistent/bootstrap.json", "wasplug", "/nonexistent"); err == nil {
		t.Fatal("expected an error for a nonexistent config path")
	}
}
