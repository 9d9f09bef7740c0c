package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore serves documents from a content directory laid out as
// <root>/<collection>/**/<id>.yaml (or .yml/.json). The file stem is the document id.
// Content is loaded once and cached; Reload re-reads the directory.
type FileStore struct {
	rootDir     string
	collections map[string][]Document
	paths       map[string]string
	mu          sync.RWMutex
}

// NewFileStore creates a file-backed store and loads all content under rootDir.
func NewFileStore(rootDir string) (*FileStore, error) {
	s := &FileStore{rootDir: rootDir}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every collection directory under the root.
func (s *FileStore) Reload() error {
	info, err := os.Stat(s.rootDir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("loading content: %s is not a directory", s.rootDir)
	}

	collections := make(map[string][]Document)
	paths := make(map[string]string)

	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		docs, err := loadCollection(filepath.Join(s.rootDir, name), name, paths)
		if err != nil {
			return fmt.Errorf("loading collection %s: %w", name, err)
		}
		collections[name] = docs
	}

	s.mu.Lock()
	s.collections = collections
	s.paths = paths
	s.mu.Unlock()

	total := 0
	for _, docs := range collections {
		total += len(docs)
	}
	slog.Info("content loaded", "root", s.rootDir, "collections", len(collections), "documents", total)
	return nil
}

func (s *FileStore) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	out := make([]Document, len(docs))
	copy(out, docs)
	return out, nil
}

func (s *FileStore) Fetch(ctx context.Context, collection, id string) (Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, false, err
	}
	if err := validateCollection(collection); err != nil {
		return Document{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if doc.ID == id {
			return doc, true, nil
		}
	}
	return Document{}, false, nil
}

// Path returns the file a document was loaded from.
func (s *FileStore) Path(collection, id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[collection+"/"+id]
	return p, ok
}

func loadCollection(dir, collection string, paths map[string]string) ([]Document, error) {
	var docs []Document
	index := make(map[string]int)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			return nil
		}

		fields, err := readDocument(path, ext)
		if err != nil {
			slog.Warn("skipping invalid document", "path", path, "error", err)
			return nil
		}
		if fields == nil {
			return nil // empty file
		}

		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		doc := Document{ID: id, Fields: fields}
		if i, dup := index[id]; dup {
			slog.Warn("duplicate document id, keeping last", "collection", collection, "id", id, "path", path)
			docs[i] = doc
		} else {
			index[id] = len(docs)
			docs = append(docs, doc)
		}
		paths[collection+"/"+id] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func readDocument(path, ext string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if ext == ".json" {
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil, nil
		}
		err = json.Unmarshal(data, &fields)
	} else {
		err = yaml.Unmarshal(data, &fields)
	}
	if err != nil {
		return nil, err
	}
	return fields, nil
}
