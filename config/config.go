// Package config holds the immutable server configuration and the ways of
// producing it: positional arguments, a config file, or both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"rhs/console"
	"rhs/utils"
)

// DefaultPort is used when only a directory is given.
const DefaultPort uint16 = 80

// Config is created once at startup and never modified afterwards.
type Config struct {
	Directory string `toml:"directory" yaml:"directory"`
	Port      uint16 `toml:"port" yaml:"port"`
}

var (
	ErrUsage       = errors.New("config: bad usage")
	ErrInvalidPort = errors.New("config: invalid port")
)

// FromArgs interprets the positional arguments:
//
//	<dir> <port>  both given
//	<port>        a lone argument that parses as a port, serving "."
//	<dir>         anything else, serving on DefaultPort
//
// Problems are reported through log as well as returned.
func FromArgs(prog string, args []string, log console.Logger) (Config, error) {
	switch len(args) {
	case 2:
		port, err := utils.ParsePort(args[1])
		if err != nil {
			log.Error(fmt.Sprintf("Invalid port number: %s", args[1]))
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidPort, args[1])
		}
		return Config{Directory: args[0], Port: port}, nil
	case 1:
		if port, err := utils.ParsePort(args[0]); err == nil {
			log.Info(fmt.Sprintf("assuming `%d` is a port. Pass both <dir> and <port> if you meant it as the directory", port))
			return Config{Directory: ".", Port: port}, nil
		}
		return Config{Directory: args[0], Port: DefaultPort}, nil
	default:
		log.Error(fmt.Sprintf("Usage: %s [directory] [port]", prog))
		return Config{}, ErrUsage
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file. Missing fields take
// the same defaults as FromArgs.
func Load(path string) (Config, error) {
	var c Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &c); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported file type %q", ext)
	}
	if c.Directory == "" {
		c.Directory = "."
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	return c, nil
}

// Resolve returns a copy of c whose Directory is absolute, free of symlinks
// and known to be a directory.
func (c Config) Resolve() (Config, error) {
	abs, err := filepath.Abs(c.Directory)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %q: %w", c.Directory, err)
	}
	dir, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %q: %w", c.Directory, err)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if !fi.IsDir() {
		return Config{}, fmt.Errorf("config: %s is not a directory", dir)
	}
	c.Directory = dir
	return c, nil
}
