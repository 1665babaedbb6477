package roam

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hesusruiz/vcutils/yaml"
	"go.uber.org/zap"
)

// DefaultPreamble is the document preamble used when neither the command line
// nor the configuration provide one.
const DefaultPreamble = "\\documentclass[12pt]{article}\n\\usepackage{serina}\n"

// DefaultIndentSize is the number of spaces of one indentation level in a
// standard Roam export.
const DefaultIndentSize = 4

// configFileName is looked up in the directory of the input file.
const configFileName = "roam2tex.yaml"

// Config collects the conversion options. Values come from the built-in
// defaults, then roam2tex.yaml next to the input file, then the document's
// YAML front matter, then the command line, later sources winning.
type Config struct {
	IndentSize int
	Preamble   string
	Ignore     []string
	CodeStyle  string
}

// DefaultConfig returns the options used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		IndentSize: DefaultIndentSize,
		Preamble:   DefaultPreamble,
		Ignore:     []string{"tags", "do", "due"},
		CodeStyle:  "github",
	}
}

// SplitNames parses a comma or whitespace separated list of property names,
// as given in the ignore option.
func SplitNames(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// applyYAML overrides the receiver with the values present in y. Relative
// paths in preambleFile are resolved against baseDir, the directory of the
// file the YAML came from.
func (cfg *Config) applyYAML(y *yaml.YAML, baseDir string) error {
	if y == nil {
		return nil
	}
	if v := y.String("indentSize"); v != "" {
		size, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid indentSize %q: %w", v, err)
		}
		cfg.IndentSize = size
	}
	if v := y.String("ignore"); v != "" {
		cfg.Ignore = SplitNames(v)
	}
	if v := y.String("codeStyle"); v != "" {
		cfg.CodeStyle = v
	}
	if v := y.String("preamble"); v != "" {
		cfg.Preamble = v
	}
	if v := y.String("preambleFile"); v != "" {
		text, err := os.ReadFile(filepath.Join(baseDir, v))
		if err != nil {
			return err
		}
		cfg.Preamble = string(text)
	}
	return nil
}

// loadConfigFile merges roam2tex.yaml from the input file's directory. A
// missing or unparseable file leaves the configuration untouched.
func (cfg *Config) loadConfigFile(inputFileName string, log *zap.SugaredLogger) error {
	dir, _ := filepath.Split(inputFileName)
	fullFileName := filepath.Join(dir, configFileName)

	y, err := yaml.ParseYamlFile(fullFileName)
	if err != nil {
		log.Debugw("no config file used", "name", fullFileName, "reason", err)
		return nil
	}

	log.Debugw("config file loaded", "name", fullFileName)
	return cfg.applyYAML(y, dir)
}
