package thor

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config describes how the global environment is bootstrapped and which
// diagnostics a run emits.
type Config struct {
	LogTokens    bool               `yaml:"log_tokens"`
	LogAST       bool               `yaml:"log_ast"`
	MaxCallDepth int                `yaml:"max_call_depth"`
	Constants    map[string]float64 `yaml:"constants"`
	Builtins     []string           `yaml:"builtins"` // Empty registers every built-in.
}

// Defaults used when no configuration file is provided.
func DefaultConfig() Config {
	return Config{
		MaxCallDepth: DefaultMaxCallDepth,
		Constants: map[string]float64{
			"PI":  math.Pi,
			"TAU": math.Pi * 2,
		},
		Builtins: BuiltinNames(),
	}
}

// LoadConfig parses a YAML configuration file from disk.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, ConfigError{why: "config: empty path"}
	}
	file, err := os.Open(path)
	if err != nil {
		return Config{}, ConfigError{fmt.Sprintf("config: open %s", path), err}
	}
	defer file.Close()
	return ParseConfig(file)
}

// ParseConfig decodes a YAML configuration stream. Unknown keys are
// rejected.
func ParseConfig(r io.Reader) (Config, error) {
	var raw Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil && err != io.EOF {
		return Config{}, ConfigError{"config: parse", err}
	}

	config := DefaultConfig()
	config.LogTokens = raw.LogTokens
	config.LogAST = raw.LogAST
	if raw.MaxCallDepth != 0 {
		config.MaxCallDepth = raw.MaxCallDepth
	}
	for name, value := range raw.Constants {
		config.Constants[name] = value
	}
	if len(raw.Builtins) != 0 {
		config.Builtins = raw.Builtins
	}
	return config, nil
}

// Populate the global scope from a configuration. Every name is validated
// before any binding is made, so a rejected configuration leaves the context
// untouched.
func (ctx *Context) ApplyConfig(config Config) error {
	if config.MaxCallDepth < 0 {
		return ConfigError{why: fmt.Sprintf("config: invalid max_call_depth %d", config.MaxCallDepth)}
	}

	names := make([]string, 0, len(config.Constants))
	for name := range config.Constants {
		if !validIdentifier(name) {
			return ConfigError{why: fmt.Sprintf("config: invalid constant name %s", quote(name))}
		}
		names = append(names, name)
	}
	sort.Strings(names)

	functions := make([]*BuiltInFunction, 0, len(config.Builtins))
	for _, name := range config.Builtins {
		builtin, err := NewBuiltInFunction(name)
		if err != nil {
			return ConfigError{"config", err}
		}
		functions = append(functions, builtin)
	}

	if config.MaxCallDepth != 0 {
		ctx.MaxCallDepth = config.MaxCallDepth
	}
	for _, name := range names {
		ctx.Globals.Set(name, ctx.NewNumber(config.Constants[name]))
	}
	for _, builtin := range functions {
		ctx.Globals.Set(builtin.Name(), builtin)
	}
	return nil
}

// RunOptions carrying the configured diagnostics.
func (self Config) RunOptions() RunOptions {
	return RunOptions{
		LogTokens: self.LogTokens,
		LogAST:    self.LogAST,
	}
}

// Reports whether the name would lex as a single identifier token.
func validIdentifier(name string) bool {
	lexer := NewLexer(name, nil)
	token, err := lexer.NextToken()
	if err != nil || token.Kind != TOKEN_IDENTIFIER || token.Literal != name {
		return false
	}
	return true
}
