package metadata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Discovery lists and reads metadata documents.
type Discovery interface {
	ListDocuments(ctx context.Context) ([]string, error)
	ReadDocument(ctx context.Context, name string) ([]byte, error)
}

// FileSystemDiscovery finds YAML metadata documents below a root path. The
// root may also name a single file.
type FileSystemDiscovery struct {
	paths map[string]string
}

// NewFileSystemDiscovery walks root for .yaml and .yml files.
func NewFileSystemDiscovery(root string) (*FileSystemDiscovery, error) {
	if root == "" {
		return nil, fmt.Errorf("metadata path cannot be empty")
	}
	d := &FileSystemDiscovery{paths: make(map[string]string)}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat metadata path %q: %w", root, err)
	}
	if !info.IsDir() {
		d.paths[filepath.Base(root)] = root
		return d, nil
	}
	err = filepath.WalkDir(root, func(path string, e os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
		default:
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %q: %w", path, err)
		}
		d.paths[filepath.ToSlash(rel)] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk metadata path %q: %w", root, err)
	}
	return d, nil
}

func (d *FileSystemDiscovery) ListDocuments(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(d.paths))
	for name := range d.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (d *FileSystemDiscovery) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	p, ok := d.paths[name]
	if !ok {
		return nil, fmt.Errorf("document %q not found", name)
	}
	content, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %q: %w", name, err)
	}
	return content, nil
}

// InMemoryDocument is a named metadata document held in memory.
type InMemoryDocument struct {
	Name    string
	Content string
}

// InMemoryDiscovery serves documents from memory, in the given order.
type InMemoryDiscovery struct {
	order    []string
	contents map[string]string
}

// NewInMemoryDiscovery creates an InMemoryDiscovery.
func NewInMemoryDiscovery(docs ...InMemoryDocument) *InMemoryDiscovery {
	d := &InMemoryDiscovery{contents: make(map[string]string)}
	for _, doc := range docs {
		if _, ok := d.contents[doc.Name]; !ok {
			d.order = append(d.order, doc.Name)
		}
		d.contents[doc.Name] = doc.Content
	}
	return d
}

func (d *InMemoryDiscovery) ListDocuments(ctx context.Context) ([]string, error) {
	return append([]string(nil), d.order...), nil
}

func (d *InMemoryDiscovery) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	content, ok := d.contents[name]
	if !ok {
		return nil, fmt.Errorf("document %q not found", name)
	}
	return []byte(content), nil
}
