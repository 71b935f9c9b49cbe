package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func reset() {
	dataFS = nil
	initialized = false
}

func TestNotInitialized(t *testing.T) {
	reset()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("data/tuning.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if Exists("data/tuning.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	reset()
	defer reset()

	Init(fstest.MapFS{
		"data/tuning.yaml": &fstest.MapFile{Data: []byte("arena: {}\n")},
	})

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"标准路径", "data/tuning.yaml", "arena: {}\n", false},
		{"带 ./ 前缀", "./data/tuning.yaml", "arena: {}\n", false},
		{"未知前缀", "assets/tuning.yaml", "", true},
		{"文件不存在", "data/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	reset()
	defer reset()

	Init(fstest.MapFS{
		"data/tuning.yaml": &fstest.MapFile{Data: []byte("x")},
	})

	if !Exists("data/tuning.yaml") {
		t.Error("Expected data/tuning.yaml to exist")
	}
	if Exists("data/other.yaml") {
		t.Error("Expected data/other.yaml to be missing")
	}
}
