// Package config loads optional TOML defaults for the mdpage CLI. Values
// given as command-line flags take precedence over the file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config mirrors the CLI's option flags.
type Config struct {
	// Stylesheet is the default href for the generated stylesheet link.
	Stylesheet string `toml:"stylesheet"`
	// Canonical is the default canonical URL.
	Canonical string `toml:"canonical"`
	// Highlight names the chroma style used for fenced code blocks.
	Highlight string `toml:"highlight"`
	// Addr is the default listen address for serve mode.
	Addr string `toml:"addr"`
}

// Load reads a config file. Unknown keys are rejected so that typos do not
// silently disable an option.
func Load(path string) (Config, error) {
	var c Config
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return c, nil
}
