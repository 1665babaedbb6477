package roam

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hesusruiz/vcutils/yaml"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.IndentSize != 4 {
		t.Errorf("IndentSize = %v, want 4", cfg.IndentSize)
	}
	if cfg.Preamble != DefaultPreamble {
		t.Errorf("Preamble = %q, want the default preamble", cfg.Preamble)
	}
	if want := []string{"tags", "do", "due"}; !reflect.DeepEqual(cfg.Ignore, want) {
		t.Errorf("Ignore = %v, want %v", cfg.Ignore, want)
	}
	if cfg.CodeStyle != "github" {
		t.Errorf("CodeStyle = %q, want %q", cfg.CodeStyle, "github")
	}
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want []string
	}{
		{
			name: "commas",
			s:    "tags,do,due",
			want: []string{"tags", "do", "due"},
		},
		{
			name: "commas and spaces",
			s:    "tags, do,  due",
			want: []string{"tags", "do", "due"},
		},
		{
			name: "single name",
			s:    "status",
			want: []string{"status"},
		},
		{
			name: "empty",
			s:    "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitNames(tt.s); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyYAML(t *testing.T) {
	y, err := yaml.ParseYaml(`
indentSize: "2"
ignore: "tags, status"
codeStyle: monokai
preamble: \documentclass{book}
`)
	if err != nil {
		t.Fatalf("ParseYaml() error = %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.applyYAML(y, ""); err != nil {
		t.Fatalf("applyYAML() error = %v", err)
	}

	if cfg.IndentSize != 2 {
		t.Errorf("IndentSize = %v, want 2", cfg.IndentSize)
	}
	if want := []string{"tags", "status"}; !reflect.DeepEqual(cfg.Ignore, want) {
		t.Errorf("Ignore = %v, want %v", cfg.Ignore, want)
	}
	if cfg.CodeStyle != "monokai" {
		t.Errorf("CodeStyle = %q, want %q", cfg.CodeStyle, "monokai")
	}
	if cfg.Preamble != `\documentclass{book}` {
		t.Errorf("Preamble = %q, want %q", cfg.Preamble, `\documentclass{book}`)
	}
}

func TestApplyYAMLKeepsDefaults(t *testing.T) {
	y, err := yaml.ParseYaml(`codeStyle: bw`)
	if err != nil {
		t.Fatalf("ParseYaml() error = %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.applyYAML(y, ""); err != nil {
		t.Fatalf("applyYAML() error = %v", err)
	}

	if cfg.IndentSize != DefaultIndentSize {
		t.Errorf("IndentSize = %v, want the default %v", cfg.IndentSize, DefaultIndentSize)
	}
	if cfg.Preamble != DefaultPreamble {
		t.Errorf("Preamble = %q, want the default preamble", cfg.Preamble)
	}
	if cfg.CodeStyle != "bw" {
		t.Errorf("CodeStyle = %q, want %q", cfg.CodeStyle, "bw")
	}
}

func TestApplyYAMLInvalidIndent(t *testing.T) {
	y, err := yaml.ParseYaml(`indentSize: "four"`)
	if err != nil {
		t.Fatalf("ParseYaml() error = %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.applyYAML(y, ""); err == nil {
		t.Errorf("applyYAML() error = nil, want an invalid indentSize error")
	}
}

func TestApplyYAMLPreambleFile(t *testing.T) {
	dir := t.TempDir()
	preamble := "\\documentclass{report}\n\\usepackage{xcolor}\n"
	if err := os.WriteFile(filepath.Join(dir, "pre.tex"), []byte(preamble), 0664); err != nil {
		t.Fatal(err)
	}

	y, err := yaml.ParseYaml(`preambleFile: pre.tex`)
	if err != nil {
		t.Fatalf("ParseYaml() error = %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.applyYAML(y, dir); err != nil {
		t.Fatalf("applyYAML() error = %v", err)
	}

	if cfg.Preamble != preamble {
		t.Errorf("Preamble = %q, want the file contents %q", cfg.Preamble, preamble)
	}
}
