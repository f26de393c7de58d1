package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/app"
	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("file not found")

//go:generate mockery --name=Store --dir=. --output=./mocks --filename=store_mock.go --case=underscore --with-expecter

// Store reads input documents and writes result documents as JSON files.
type Store interface {
	LoadRecords(path string) ([]app.RawAppRecord, error)
	LoadLabels(path string) (map[string]int, error)
	LoadReports(path string) ([]verdict.Report, error)
	Save(path string, v any) error
}

type jsonStore struct {
	logger *logrus.Logger
}

func NewJSONStore(logger *logrus.Logger) Store {
	return &jsonStore{logger: logger}
}

// LoadRecords reads a JSON array of app records. A missing file is reported
// as ErrNotFound so callers can tell it apart from a malformed document.
func (s *jsonStore) LoadRecords(path string) ([]app.RawAppRecord, error) {
	data, err := s.read(path)
	if err != nil {
		return nil, err
	}
	records, err := app.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	s.logger.WithFields(logrus.Fields{
		"path":    path,
		"records": len(records),
	}).Info("loaded app records")
	return records, nil
}

// LoadLabels reads a ground-truth document mapping app ids to 0 (genuine) or
// 1 (fraud).
func (s *jsonStore) LoadLabels(path string) (map[string]int, error) {
	data, err := s.read(path)
	if err != nil {
		return nil, err
	}
	var labels map[string]int
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("load labels %s: %w", path, err)
	}
	for id, label := range labels {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("load labels %s: label for %q must be 0 or 1, got %d", path, id, label)
		}
	}
	return labels, nil
}

// LoadReports reads a results document written by a previous analysis run.
func (s *jsonStore) LoadReports(path string) ([]verdict.Report, error) {
	data, err := s.read(path)
	if err != nil {
		return nil, err
	}
	var reports []verdict.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("load reports %s: %w", path, err)
	}
	if reports == nil {
		reports = []verdict.Report{}
	}
	return reports, nil
}

// Save writes v as indented JSON, creating parent directories. The file is
// written to a temporary sibling first and renamed into place.
func (s *jsonStore) Save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}

	s.logger.WithField("path", path).Info("saved document")
	return nil
}

func (s *jsonStore) read(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
