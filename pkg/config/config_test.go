package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("QUICKNOTE_TEST_NAME", "from-env")
	path := writeFile(t, "name: ${QUICKNOTE_TEST_NAME}\nport: 9000\n")

	var s sample
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "from-env" || s.Port != 9000 {
		t.Errorf("got %+v", s)
	}
}

func TestLoadValidates(t *testing.T) {
	path := writeFile(t, "port: 0\n")
	var s sample
	err := Load(path, &s)
	if err == nil || !strings.Contains(err.Error(), "port must be positive") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	s := sample{Name: "default", Port: 8080}
	loaded, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"), &s)
	if err != nil || loaded {
		t.Fatalf("LoadOrDefault = %v, %v", loaded, err)
	}
	if s.Name != "default" || s.Port != 8080 {
		t.Errorf("defaults changed: %+v", s)
	}
}

func TestLoadOrDefaultOverlaysFile(t *testing.T) {
	path := writeFile(t, "port: 9001\n")
	s := sample{Name: "default", Port: 8080}
	loaded, err := LoadOrDefault(path, &s)
	if err != nil || !loaded {
		t.Fatalf("LoadOrDefault = %v, %v", loaded, err)
	}
	if s.Name != "default" || s.Port != 9001 {
		t.Errorf("got %+v", s)
	}
}
