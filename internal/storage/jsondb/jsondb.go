// Package jsondb persists each collection as one pretty-printed JSON
// file holding an ordered list of records. A missing or corrupt file
// loads as an empty collection so callers never see "not yet created"
// as an error. Every load-modify-save cycle runs under the collection's
// mutex, so concurrent mutations serialize instead of clobbering each
// other mid-write; semantics stay last-writer-wins.
package jsondb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/unilife-dev/unilife/internal/domain"
	"github.com/unilife-dev/unilife/internal/logger"
)

const (
	usersCollection    = "users"
	postsCollection    = "posts"
	commentsCollection = "comments"
	messagesCollection = "messages"
)

type Store struct {
	dir string

	mu    sync.Mutex // guards locks
	locks map[string]*sync.Mutex
}

func New(dir string) (*Store, error) {
	p := filepath.Clean(dir)
	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", p, err)
	}
	return &Store{dir: p, locks: make(map[string]*sync.Mutex)}, nil
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// read deserializes a collection without locking. Unreadable or
// malformed backing data degrades to an empty list by design.
func read[T any](s *Store, collection string) []T {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Log.Warn("collection file is corrupt, treating as empty", "collection", collection, "error", err)
		return nil
	}
	return records
}

// write replaces the whole collection. The temp-file-then-rename dance
// keeps a partially written file from ever being visible to readers.
func write[T any](s *Store, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", collection, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace collection %s: %w", collection, err)
	}
	return nil
}

func load[T any](s *Store, collection string) []T {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return read[T](s, collection)
}

// update runs one load-modify-save cycle under the collection lock.
func update[T any](s *Store, collection string, fn func([]T) ([]T, error)) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := fn(read[T](s, collection))
	if err != nil {
		return err
	}
	return write(s, collection, records)
}

func (s *Store) LoadUsers() []domain.User {
	return load[domain.User](s, usersCollection)
}

func (s *Store) UpdateUsers(fn func([]domain.User) ([]domain.User, error)) error {
	return update(s, usersCollection, fn)
}

func (s *Store) LoadPosts() []domain.Post {
	return load[domain.Post](s, postsCollection)
}

func (s *Store) UpdatePosts(fn func([]domain.Post) ([]domain.Post, error)) error {
	return update(s, postsCollection, fn)
}

func (s *Store) LoadComments() []domain.Comment {
	return load[domain.Comment](s, commentsCollection)
}

func (s *Store) UpdateComments(fn func([]domain.Comment) ([]domain.Comment, error)) error {
	return update(s, commentsCollection, fn)
}

func (s *Store) LoadMessages() []domain.Message {
	return load[domain.Message](s, messagesCollection)
}

func (s *Store) UpdateMessages(fn func([]domain.Message) ([]domain.Message, error)) error {
	return update(s, messagesCollection, fn)
}
