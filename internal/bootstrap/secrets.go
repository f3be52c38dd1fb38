package bootstrap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"strings"
	"sync"
)

// DefaultSecretsFile is where the secret manager mounts the export file.
const DefaultSecretsFile = "/vault/secrets/config"

const (
	exportPrefix  = "export "
	maxLineLength = 1 << 20
)

// Result is the outcome of parsing a secrets file.
type Result struct {
	// Secrets maps keys to values; a later line wins over an earlier one.
	Secrets map[string]string
	// Malformed lists 1-based line numbers of export lines that were skipped.
	Malformed []int
	// Found is false when the file did not exist.
	Found bool
}

// Parse reads export lines from r.
func Parse(r io.Reader) (Result, error) {
	res := Result{Secrets: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.HasPrefix(line, exportPrefix) {
			continue
		}

		key, value, ok := strings.Cut(strings.TrimPrefix(line, exportPrefix), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			res.Malformed = append(res.Malformed, lineNo)
			continue
		}

		res.Secrets[key] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("failed to read secrets at line %d: %w", lineNo+1, err)
	}

	return res, nil
}

// LoadFile parses the secrets file at path. A missing file is not an error.
func LoadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Secrets: map[string]string{}}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to open secrets file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	res, err := Parse(f)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse secrets file %s: %w", path, err)
	}
	res.Found = true
	return res, nil
}

// Loader reads a secrets file at most once per process.
type Loader struct {
	path string

	once   sync.Once
	result Result
	err    error
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the parsed secrets, reading the file on the first call only.
func (l *Loader) Load() (map[string]string, error) {
	l.once.Do(func() {
		l.result, l.err = LoadFile(l.path)
		if l.err != nil {
			return
		}
		if !l.result.Found {
			slog.Info("No secrets file found, skipping bootstrap", "path", l.path)
			return
		}
		if len(l.result.Malformed) > 0 {
			slog.Warn("Skipped malformed secrets lines", "path", l.path, "lines", l.result.Malformed)
		}
		slog.Info("Secrets loaded", "path", l.path, "keys", len(l.result.Secrets))
	})
	if l.err != nil {
		return nil, l.err
	}
	return maps.Clone(l.result.Secrets), nil
}
