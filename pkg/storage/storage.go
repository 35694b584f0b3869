package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdin is the path that reads from standard input.
const Stdin = "-"

type Storage struct {
	in  io.Reader
	out io.Writer
}

// New returns a Storage bound to the process streams.
func New() *Storage {
	return &Storage{in: os.Stdin, out: os.Stdout}
}

// NewWithStreams returns a Storage that reads "-" from in and writes empty
// paths to out.
func NewWithStreams(in io.Reader, out io.Writer) *Storage {
	return &Storage{in: in, out: out}
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	if filePath == Stdin {
		data, err := io.ReadAll(s.in)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if filePath == "" || filePath == Stdin {
		if _, err := s.out.Write(content); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}
