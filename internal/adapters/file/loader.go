package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/surveykit/internal/compiler"
	"github.com/aretw0/surveykit/pkg/domain"
	"github.com/aretw0/surveykit/pkg/schema"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// AnswersDir is the subdirectory holding answer sets.
const AnswersDir = "answers"

var extensions = []string{".json", ".yaml", ".yml"}

// Loader implements ports.DocumentLoader and ports.AnswerLoader over a directory.
// Documents live at <base>/<id>.{json,yaml,yml}; answer sets at
// <base>/answers/<id>.{json,yaml,yml}.
type Loader struct {
	BasePath string
}

// New creates a Loader rooted at basePath (the working directory when empty).
func New(basePath string) *Loader {
	if basePath == "" {
		basePath = "."
	}
	return &Loader{BasePath: basePath}
}

// LoadDocument reads and decodes the document with the given id.
func (l *Loader) LoadDocument(ctx context.Context, id string) (*domain.SchemaNode, error) {
	path, err := l.resolve(l.BasePath, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
		}
		return nil, err
	}
	return ReadDocument(path)
}

// ListDocuments returns the ids of the documents found in the base directory.
func (l *Loader) ListDocuments(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	seen := make(map[string]bool)
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isDocumentExt(ext) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadAnswers reads the answer set with the given id.
func (l *Loader) LoadAnswers(ctx context.Context, id string) (domain.AnswerSet, error) {
	path, err := l.resolve(filepath.Join(l.BasePath, AnswersDir), id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAnswersNotFound, id)
		}
		return nil, err
	}
	return ReadAnswers(path)
}

// resolve finds the file for id, trying each supported extension in order.
func (l *Loader) resolve(dir, id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid id %q: %w", id, fs.ErrNotExist)
	}
	for _, ext := range extensions {
		path := filepath.Join(dir, id+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}
	return "", fs.ErrNotExist
}

// ReadDocument decodes the document at path, picking the format from its extension.
func ReadDocument(path string) (*domain.SchemaNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return compiler.NewParser(compiler.FormatFromPath(path)).Parse(data)
}

// ReadAnswers decodes the answer set at path, picking the format from its extension.
func ReadAnswers(path string) (domain.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	return compiler.NewParser(compiler.FormatFromPath(path)).ParseAnswers(data)
}

// ReadContract decodes a saved answer contract (node id to shape name), picking
// the format from its extension.
func ReadContract(path string) (schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract: %w", err)
	}
	var contract schema.Schema
	if compiler.FormatFromPath(path) == compiler.FormatYAML {
		err = yaml.Unmarshal(data, &contract)
	} else {
		err = json.Unmarshal(data, &contract)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode contract %s: %w", path, err)
	}
	return contract, nil
}

func isDocumentExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
