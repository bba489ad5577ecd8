// Package config holds the run configuration of nsgenbind.
//
// Options come from an optional nsgenbind.toml and are then overridden by
// command line flags. The value is passed down explicitly; there is no
// package level state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file looked up next to the
// binding file.
const FileName = "nsgenbind.toml"

var (
	ErrVerboseStdout = errors.New("output to stdout with verbose logging would fail")
	ErrDepStdout     = errors.New("output to stdout with dep generation would fail")
	ErrDepStdin      = errors.New("input from stdin with dep generation would fail")
)

// Options configures one run.
type Options struct {
	IDLPath string `toml:"idlpath"` // directory WebIDL files are read from
	Output  string `toml:"output"`  // output file, stdout when empty
	DepFile string `toml:"depfile"` // make dependency file, none when empty
	LogFile string `toml:"logfile"` // log destination, stderr when empty

	Verbose  bool `toml:"verbose"`
	Debug    bool `toml:"debug"`
	Warnings bool `toml:"warnings"`

	// Input is the binding file, "-" or empty for stdin. Only set from the
	// command line.
	Input string `toml:"-"`

	// Dir is the directory containing the configuration file (set at load
	// time).
	Dir string `toml:"-"`
}

// Load parses a configuration file. Relative paths in it are resolved
// against its directory.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var o Options
	if err := toml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	o.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	o.IDLPath = o.resolve(o.IDLPath)
	o.Output = o.resolve(o.Output)
	o.DepFile = o.resolve(o.DepFile)
	o.LogFile = o.resolve(o.LogFile)
	return &o, nil
}

// Find loads FileName from dir. It returns empty options when there is no
// such file.
func Find(dir string) (*Options, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Options{}, nil
		}
		return nil, err
	}
	return Load(path)
}

func (o *Options) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.Dir, path)
}

// Stdin reports whether the binding is read from standard input.
func (o *Options) Stdin() bool {
	return o.Input == "" || o.Input == "-"
}

// Validate rejects combinations that cannot work: verbose output and dep
// files both need a named output file, and dep files a named input.
func (o *Options) Validate() error {
	if o.Verbose && o.Output == "" {
		return ErrVerboseStdout
	}
	if o.DepFile != "" && o.Output == "" {
		return ErrDepStdout
	}
	if o.DepFile != "" && o.Stdin() {
		return ErrDepStdin
	}
	return nil
}

// Verbosity is the commonlog verbosity for the options: warnings by
// default, notices with Warnings, info with Verbose and everything with
// Debug.
func (o *Options) Verbosity() int {
	switch {
	case o.Debug:
		return 2
	case o.Verbose:
		return 1
	case o.Warnings:
		return 0
	}
	return -1
}

// IDLFile returns the path of a WebIDL file named in a binding.
func (o *Options) IDLFile(name string) string {
	if o.IDLPath == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.IDLPath, name)
}
