package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
)

func TestTOMLLoader_Load(t *testing.T) {
	memfs := MapFS{"/tasktable.toml": []byte(`
[select]
rowSelect = "single"
carryForward = false
initialIds = ["2", "3"]

[theme]
odd = "#ffffff"
`)}

	config, err := NewTOMLLoaderWithFS(memfs, "/tasktable.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"select.rowSelect", "single"},
		{"select.carryForward", false},
		{"select.initialIds", []any{"2", "3"}},
		{"theme.odd", "#ffffff"},
	}
	for _, tt := range tests {
		got, ok := Lookup(config, tt.path)
		if !ok {
			t.Errorf("%s missing", tt.path)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s = %#v, want %#v", tt.path, got, tt.want)
		}
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(MapFS{}, "/missing.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config != nil {
		t.Errorf("config = %v, want nil for missing file", config)
	}

	_, err = NewTOMLLoaderWithFS(MapFS{}, "/missing.toml").Strict().Load()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("strict Load error = %v, want fs.ErrNotExist", err)
	}
}

func TestTOMLLoader_EmptyPath(t *testing.T) {
	config, err := NewTOMLLoader("").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := MapFS{"/bad.toml": []byte("[select]\nrowSelect = \n")}

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q, want /bad.toml", pe.Path)
	}
	if pe.Line == 0 {
		t.Error("Line should be set from the decoder position")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"select": map[string]any{"rowSelect": "multi", "clickType": "row"},
		"data":   map[string]any{"file": "a.toml"},
	}
	src := map[string]any{
		"select":  map[string]any{"rowSelect": "single"},
		"data":    "flat",
		"logging": map[string]any{"level": "debug"},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"select":  map[string]any{"rowSelect": "single", "clickType": "row"},
		"data":    "flat",
		"logging": map[string]any{"level": "debug"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %#v, want %#v", got, want)
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %#v, want empty map", got)
	}
}

func TestLoadAll(t *testing.T) {
	memfs := MapFS{"/c.toml": []byte("[select]\nrowSelect = \"single\"\nbuttonSelect = \"single\"\n")}
	env := NewEnvLoaderWithEnviron("TASKTABLE_", []string{"TASKTABLE_SELECT_ROW_SELECT=multi"})

	merged, err := LoadAll(NewTOMLLoaderWithFS(memfs, "/c.toml"), env)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if v, _ := Lookup(merged, "select.rowSelect"); v != "multi" {
		t.Errorf("select.rowSelect = %v, want env override multi", v)
	}
	if v, _ := Lookup(merged, "select.buttonSelect"); v != "single" {
		t.Errorf("select.buttonSelect = %v, want file value single", v)
	}
}

func TestLookup(t *testing.T) {
	data := map[string]any{"a": map[string]any{"b": 1}}
	if v, ok := Lookup(data, "a.b"); !ok || v != 1 {
		t.Errorf("Lookup(a.b) = %v, %v", v, ok)
	}
	if _, ok := Lookup(data, "a.c"); ok {
		t.Error("Lookup(a.c) should miss")
	}
	if _, ok := Lookup(data, "a.b.c"); ok {
		t.Error("Lookup through a scalar should miss")
	}
}
