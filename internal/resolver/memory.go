package resolver

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hanpama/resourcegraph/internal/metadata"
)

// MemoryStore is an in-memory Provider and Processor.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	items   map[string]map[string]any
	classes map[string]string
}

var (
	_ Provider  = (*MemoryStore)(nil)
	_ Processor = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:   make(map[string]map[string]any),
		classes: make(map[string]string),
	}
}

// Put stores item under class and returns its id. Items without a string
// "id" receive a generated one.
func (s *MemoryStore) Put(class string, item map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(class, item)
}

func (s *MemoryStore) put(class string, item map[string]any) string {
	id, _ := item["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	stored := make(map[string]any, len(item)+1)
	for k, v := range item {
		stored[k] = v
	}
	stored["id"] = id
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = stored
	s.classes[id] = class
	return id
}

func (s *MemoryStore) Item(ctx context.Context, class, id string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok || (class != "" && s.classes[id] != class) {
		return nil, nil
	}
	return Mark(item, s.classes[id]), nil
}

// Collection returns the items of class in insertion order. A filter on a
// property name matches by equality; a filter named "<prop>_list" matches
// any of the listed values. Other filters are ignored.
func (s *MemoryStore) Collection(ctx context.Context, class string, op *metadata.Operation, filters map[string]any) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []map[string]any
	for _, id := range s.order {
		if s.classes[id] != class {
			continue
		}
		item := s.items[id]
		if matches(item, filters) {
			out = append(out, Mark(item, class))
		}
	}
	return out, nil
}

func matches(item map[string]any, filters map[string]any) bool {
	for key, want := range filters {
		if prop, ok := strings.CutSuffix(key, "_list"); ok {
			values, _ := want.([]any)
			if _, present := item[prop]; present && !slices.Contains(values, item[prop]) {
				return false
			}
			continue
		}
		have, present := item[key]
		if !present {
			continue
		}
		switch want.(type) {
		case string, int, float64, bool:
			if have != want {
				return false
			}
		}
	}
	return true
}

func (s *MemoryStore) Process(ctx context.Context, class string, op *metadata.Operation, id string, input map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch op.Name {
	case metadata.OperationCreate:
		item := make(map[string]any, len(input))
		for k, v := range input {
			item[k] = v
		}
		delete(item, "id")
		newID := s.put(class, item)
		return Mark(s.items[newID], class), nil
	case metadata.OperationUpdate:
		item, ok := s.items[id]
		if !ok || s.classes[id] != class {
			return nil, fmt.Errorf("item %q not found", id)
		}
		for k, v := range input {
			item[k] = v
		}
		item["id"] = id
		return Mark(item, class), nil
	case metadata.OperationDelete:
		if _, ok := s.items[id]; !ok || s.classes[id] != class {
			return nil, fmt.Errorf("item %q not found", id)
		}
		delete(s.items, id)
		delete(s.classes, id)
		s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
		return nil, nil
	}
	return nil, fmt.Errorf("operation %q is not supported by the memory store", op.Name)
}
