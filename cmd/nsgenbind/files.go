package main

import (
	"bytes"
	"io/fs"
	"os"
	"strings"

	"github.com/netsurf-plan9/nsgenbind/internal/config"
)

// idlFS opens WebIDL files relative to the configured IDL path.
type idlFS struct {
	opts *config.Options
}

func (f idlFS) Open(name string) (fs.File, error) {
	return os.Open(f.opts.IDLFile(name))
}

// depFile renders a make rule making the output and the dep file depend
// on every WebIDL file read.
func depFile(opts *config.Options, files []string) []byte {
	var sb strings.Builder
	sb.WriteString(opts.DepFile)
	sb.WriteString(" ")
	sb.WriteString(opts.Output)
	sb.WriteString(" :")
	for _, f := range files {
		sb.WriteString(" ")
		sb.WriteString(opts.IDLFile(f))
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}

// writeResult replaces filepath with data through a temporary file. An
// existing file with the same content is left untouched so make does not
// rebuild its dependents.
func writeResult(filepath string, data []byte) error {
	if old, err := os.ReadFile(filepath); err == nil && bytes.Equal(old, data) {
		return nil
	}

	f, err := os.Create(filepath + ".tmp")
	if err != nil {
		return err
	}
	defer f.Close()
	defer os.Remove(filepath + ".tmp")

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(filepath+".tmp", filepath)
}
