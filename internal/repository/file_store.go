// internal/repository/file_store.go
package repository

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/internal/models"
)

const snapshotSchemaURL = "https://choreboard.local/snapshot.schema.json"

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

// FileStore keeps the snapshot in a single JSON document.
type FileStore struct {
	path         string
	participants []string
	schema       *jsonschema.Schema
	logger       *logging.Logger
}

func NewFileStore(path string, participants []string, logger *logging.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("state file path is empty")
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add snapshot schema: %w", err)
	}
	schema, err := compiler.Compile(snapshotSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}

	if logger == nil {
		logger = logging.NewNop()
	}
	return &FileStore{
		path:         path,
		participants: participants,
		schema:       schema,
		logger:       logger,
	}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.DefaultSnapshot(s.participants), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	snap, err := s.decode(data)
	if err != nil {
		s.logger.Warn(ctx, "state file is corrupt, starting from defaults",
			zap.String("path", s.path), zap.Error(err))
		return models.DefaultSnapshot(s.participants), nil
	}
	return snap, nil
}

func (s *FileStore) decode(data []byte) (*models.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := s.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %s", strings.Join(schemaProblems(err), "; "))
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	fields, _ := doc.(map[string]any)
	fillDefaults(&snap, s.participants, fields["points"] != nil)
	return &snap, nil
}

// Save writes the snapshot to a temp file next to the target and renames it
// into place, so readers see either the old or the new document.
func (s *FileStore) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".choreboard-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace state file: %w", err)
	}

	s.logger.Debug(ctx, "state file written", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return nil
}

// schemaProblems flattens a validation error into its leaf messages.
func schemaProblems(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	var out []string
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]string, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}
