package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-lynx/wasplug/plugin"
)

func TestParseID16_RoundTrip(t *testing.T) {
	id, err := parseID16("00112233445566778899aabbccddeeff00")
	if err == nil {
		t.Fatal("expected an error for a 17-byte hex string")
	}
	_ = id

	id, err = parseID16("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id[0] != 0x00 || id[15] != 0x0f {
		t.Fatalf("unexpected decode: %x", id)
	}
}

func TestParseID16_InvalidHex(t *testing.T) {
	if _, err := parseID16("not-hex"); err == nil {
		t.Fatal("expected an error for invalid hex")
	}
}

func TestParseCardinality(t *testing.T) {
	cases := map[string]plugin.Arity{
		"exactly-one":  plugin.ExactlyOne,
		"at-most-one":  plugin.AtMostOne,
		"at-least-one": plugin.AtLeastOne,
		"any":          plugin.Any,
	}
	for s, want := range cases {
		got, err := parseCardinality(s)
		if err != nil || got != want {
			t.Errorf("parseCardinality(%q) = %v, %v; want %v, nil", s, got, err, want)
		}
	}
	if _, err := parseCardinality("bogus"); err == nil {
		t.Fatal("expected an error for an unknown cardinality")
	}
}

func TestFunctionSpec_Descriptor(t *testing.T) {
	fuel := uint64(500)
	f := functionSpec{Name: "touch", Method: true, Return: "may-contain-resources", FuelBudget: &fuel}
	fd, err := f.descriptor()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fd.Name != "touch" || !fd.Method || fd.Return != plugin.MayContainResources || *fd.FuelBudget != 500 {
		t.Fatalf("unexpected descriptor: %+v", fd)
	}
}

func TestFunctionSpec_UnknownReturnKind(t *testing.T) {
	f := functionSpec{Name: "bad", Return: "nonsense"}
	if _, err := f.descriptor(); err == nil {
		t.Fatal("expected an error for an unknown return kind")
	}
}

func writeManifest(t *testing.T, dir string, contractsJSON, pluginsJSON string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "contracts.json"), []byte(contractsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugins.json"), []byte(pluginsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirectory_HappyPath(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir,
		`[{"id":"000102030405060708090a0b0c0d0e0f","package_name":"demo","cardinality":"exactly-one",
		   "functions":[{"name":"greet","return":"no-resources"}],"resources":["handle"]}]`,
		`[{"id":"0f0e0d0c0b0a09080706050403020100","plug":"000102030405060708090a0b0c0d0e0f",
		   "sockets":[],"wasm_path":"demo.wasm"}]`,
	)

	contracts, plugins, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contracts) != 1 || len(plugins) != 1 {
		t.Fatalf("expected 1 contract and 1 plugin, got %d/%d", len(contracts), len(plugins))
	}

	var contract plugin.ContractData
	for _, c := range contracts {
		contract = c
	}
	pkgName, err := contract.PackageName()
	if err != nil || pkgName != "demo" {
		t.Fatalf("unexpected package name: %q, %v", pkgName, err)
	}
	arity, err := contract.Cardinality()
	if err != nil || arity != plugin.ExactlyOne {
		t.Fatalf("unexpected cardinality: %v, %v", arity, err)
	}

	plugID, err := plugins[0].Plug()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cID, _ := contract.ID()
	if plugID != cID {
		t.Fatalf("expected plugin to plug the loaded contract, got %v vs %v", plugID, cID)
	}
}

func TestLoadDirectory_MissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadDirectory(dir); err == nil {
		t.Fatal("expected an error when contracts.json is missing")
	}
}

func TestLoadDirectory_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `not json`, `[]`)
	if _, _, err := LoadDirectory(dir); err == nil {
		t.Fatal("expected an error for malformed contracts.json")
	}
}

func TestJSONContractData_InvalidID(t *testing.T) {
	cd := JSONContractData{doc: contractDoc{ID: "zz"}}
	if _, err := cd.ID(); err == nil {
		t.Fatal("expected an error for an invalid id")
	}
}

func TestJSONContractData_EmptyPackageName(t *testing.T) {
	cd := JSONContractData{doc: contractDoc{}}
	if _, err := cd.PackageName(); err == nil {
		t.Fatal("expected an error for an empty package_name")
	}
}
