package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteArtifacts(t *testing.T) {
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	t.Run("single format uses output path", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "fig.svg")
		paths, err := writeArtifacts(artifacts, []string{"svg"}, out)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(paths, []string{out}) {
			t.Errorf("paths = %v, want [%s]", paths, out)
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("multiple formats share the base path", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "fig.svg")
		paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, out)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{
			filepath.Join(dir, "fig.svg"),
			filepath.Join(dir, "fig.json"),
		}
		if !reflect.DeepEqual(paths, want) {
			t.Errorf("paths = %v, want %v", paths, want)
		}
	})

	t.Run("extension follows the format", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "layout.svg")
		paths, err := writeArtifacts(artifacts, []string{"json"}, out)
		if err != nil {
			t.Fatal(err)
		}
		want := filepath.Join(dir, "layout.json")
		if len(paths) != 1 || paths[0] != want {
			t.Errorf("paths = %v, want [%s]", paths, want)
		}
	})
}
