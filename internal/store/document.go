package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"fjacquet/finanai/internal/fileutils"
	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

// documentCodec reads and writes a key-value document file.
type documentCodec struct {
	name      string
	unmarshal func(data []byte) (map[string]interface{}, error)
	parseItem func(s string) (interface{}, error)
	marshal   func(doc map[string]interface{}) ([]byte, error)
}

var jsonCodec = documentCodec{
	name: "json",
	unmarshal: func(data []byte) (map[string]interface{}, error) {
		var doc map[string]interface{}
		if err := decodeJSON(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	},
	parseItem: func(s string) (interface{}, error) {
		var v interface{}
		err := decodeJSON([]byte(s), &v)
		return v, err
	},
	marshal: func(doc map[string]interface{}) ([]byte, error) {
		return json.MarshalIndent(doc, "", "  ")
	},
}

var yamlCodec = documentCodec{
	name: "yaml",
	unmarshal: func(data []byte) (map[string]interface{}, error) {
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	},
	parseItem: func(s string) (interface{}, error) {
		var v interface{}
		err := yaml.Unmarshal([]byte(s), &v)
		return v, err
	},
	marshal: func(doc map[string]interface{}) ([]byte, error) {
		return yaml.Marshal(doc)
	},
}

func decodeJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// DocumentStore keeps transactions and goals in a single JSON or YAML file
// shaped like a browser local-storage export: each key holds either a list or
// a string containing an encoded list. Unknown keys are preserved on save.
type DocumentStore struct {
	path   string
	codec  documentCodec
	logger logging.Logger
	mu     sync.Mutex
}

// NewJSONStore creates a store backed by a JSON local-storage export.
func NewJSONStore(path string, logger logging.Logger) *DocumentStore {
	return &DocumentStore{path: path, codec: jsonCodec, logger: logger}
}

// NewYAMLStore creates a store backed by a YAML document with the same keys.
func NewYAMLStore(path string, logger logging.Logger) *DocumentStore {
	return &DocumentStore{path: path, codec: yamlCodec, logger: logger}
}

// Path returns the backing file.
func (s *DocumentStore) Path() string {
	return s.path
}

func (s *DocumentStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	records, err := s.load(ctx, KeyTransactions)
	if err != nil {
		return nil, err
	}
	return decodeTransactions(records, s.logger.WithField(logging.FieldKey, KeyTransactions)), nil
}

func (s *DocumentStore) LoadGoals(ctx context.Context) ([]models.Goal, error) {
	records, err := s.load(ctx, KeyGoals)
	if err != nil {
		return nil, err
	}
	return decodeGoals(records, s.logger.WithField(logging.FieldKey, KeyGoals)), nil
}

func (s *DocumentStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	return s.save(ctx, KeyTransactions, transactionDocs(transactions))
}

func (s *DocumentStore) SaveGoals(ctx context.Context, goals []models.Goal) error {
	return s.save(ctx, KeyGoals, goalDocs(goals))
}

// Close is a no-op; the file is opened per operation.
func (s *DocumentStore) Close() error {
	return nil
}

// load returns the records under key. Only I/O failures other than a missing
// file are returned as errors; malformed content yields an empty sequence.
func (s *DocumentStore) load(ctx context.Context, key string) ([]record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		var decodeErr *finerrors.DecodeError
		if errors.As(err, &decodeErr) {
			s.logger.WithError(err).Warn("Stored document is malformed, using empty data",
				logging.Field{Key: logging.FieldKey, Value: key})
			return nil, nil
		}
		return nil, err
	}

	records, err := s.recordsFromValue(doc[key], key)
	if err != nil {
		s.logger.WithError(err).Warn("Stored value is malformed, using empty data",
			logging.Field{Key: logging.FieldKey, Value: key})
		return nil, nil
	}
	return records, nil
}

func (s *DocumentStore) readDocument() (map[string]interface{}, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]interface{}{}, nil
	}

	doc, err := s.codec.unmarshal(data)
	if err != nil {
		return nil, &finerrors.DecodeError{Source: s.path, Key: "document", Err: err}
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}

// recordsFromValue accepts a list, or a string holding an encoded list as
// local storage does. Non-object list items become nil records.
func (s *DocumentStore) recordsFromValue(value interface{}, key string) ([]record, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(v) == "" || strings.TrimSpace(v) == "null" {
			return nil, nil
		}
		parsed, err := s.codec.parseItem(v)
		if err != nil {
			return nil, &finerrors.DecodeError{Source: s.path, Key: key, Err: err}
		}
		if _, nested := parsed.(string); nested {
			return nil, &finerrors.DecodeError{Source: s.path, Key: key, Err: fmt.Errorf("doubly encoded value")}
		}
		return s.recordsFromValue(parsed, key)
	case []interface{}:
		records := make([]record, len(v))
		for i, item := range v {
			records[i] = toRecord(item)
		}
		return records, nil
	default:
		return nil, &finerrors.DecodeError{Source: s.path, Key: key, Err: fmt.Errorf("expected a list, got %T", v)}
	}
}

func toRecord(item interface{}) record {
	switch m := item.(type) {
	case map[string]interface{}:
		return record(m)
	case map[interface{}]interface{}:
		r := make(record, len(m))
		for k, v := range m {
			r[fmt.Sprint(k)] = v
		}
		return r
	default:
		return nil
	}
}

func (s *DocumentStore) save(ctx context.Context, key string, docs interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		var decodeErr *finerrors.DecodeError
		if !errors.As(err, &decodeErr) {
			return err
		}
		s.logger.WithError(err).Warn("Replacing malformed store document")
		doc = map[string]interface{}{}
	}
	doc[key] = docs

	data, err := s.codec.marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := writeFile(s.path, data); err != nil {
		return err
	}

	s.logger.Debug("Saved store key",
		logging.Field{Key: logging.FieldKey, Value: key},
		logging.Field{Key: logging.FieldFormat, Value: s.codec.name})
	return nil
}

func writeFile(path string, data []byte) error {
	return fileutils.WriteFile(path, data, models.PermissionDataFile)
}
