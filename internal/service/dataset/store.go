package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/pkg/errors"
)

// Store reads and writes member collections under a single data directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

func (s *Store) Dir() string {
	return s.dir
}

// Path returns the location of the named collection file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save writes records as an indented UTF-8 JSON array, replacing the file in
// one rename. A nil slice is written as [].
func (s *Store) Save(name string, records []domain.MemberRecord) (string, error) {
	path := s.Path(name)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.NewDataFileError("failed to create data directory", "mkdir", s.dir, err)
	}

	if records == nil {
		records = []domain.MemberRecord{}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return "", errors.NewDataFileError("failed to encode collection", "encode", path, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", errors.NewDataFileError("failed to create temp file", "write", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.NewDataFileError("failed to write collection", "write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.NewDataFileError("failed to close collection", "write", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		s.logger.Debug("Failed to chmod collection", zap.String("path", tmpPath), zap.Error(err))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", errors.NewDataFileError("failed to replace collection", "rename", path, err)
	}

	s.logger.Info("Saved collection",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)

	return path, nil
}

// Load reads the named collection. A missing file yields a DataFileError for
// which errors.IsNotExist reports true.
func (s *Store) Load(name string) ([]domain.MemberRecord, error) {
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewDataFileError("failed to read collection", "read", path, err)
	}

	var records []domain.MemberRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewDataFileError("failed to parse collection", "decode", path, fmt.Errorf("invalid JSON: %w", err))
	}
	if records == nil {
		records = []domain.MemberRecord{}
	}

	return records, nil
}
