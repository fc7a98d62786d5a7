// Package quizfile persists the local cache of quiz question/answer pairs.
// The whole collection is read once per process and written back wholesale
// when new pairs were discovered.
package quizfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"quizbot/internal/match"
)

// Entry is a cached question/answer pair.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Quiz groups the cached entries of one quiz page.
type Quiz struct {
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}

// document is the on-disk shape of the cache.
type document struct {
	Quizzes []Quiz `json:"quizzes"`
}

// File is the in-memory quiz cache bound to its backing path.
type File struct {
	path    string
	quizzes []Quiz
	dirty   bool
}

// Load reads the cache at path. A missing file yields an empty cache so the
// first run starts from nothing.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	doc, err := parse(data)
	if err != nil {
		return nil, err
	}
	return &File{path: path, quizzes: doc.Quizzes}, nil
}

// parse decodes a single strict JSON document.
func parse(data []byte) (document, error) {
	var doc document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return document{}, fmt.Errorf("parse quiz file: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return document{}, fmt.Errorf("parse quiz file: multiple documents are not supported")
		}
		return document{}, fmt.Errorf("parse quiz file: %w", err)
	}
	return doc, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Quizzes returns the cached quizzes.
func (f *File) Quizzes() []Quiz {
	return f.quizzes
}

// Find returns the quiz with the given name.
func (f *File) Find(name string) (Quiz, bool) {
	for _, quiz := range f.quizzes {
		if quiz.Name == name {
			return quiz, true
		}
	}
	return Quiz{}, false
}

// Pairs returns the entries of a quiz as matcher pairs.
func (f *File) Pairs(name string) []match.Pair {
	quiz, ok := f.Find(name)
	if !ok {
		return nil
	}
	pairs := make([]match.Pair, 0, len(quiz.Entries))
	for _, entry := range quiz.Entries {
		pairs = append(pairs, match.Pair{Question: entry.Question, Answer: entry.Answer})
	}
	return pairs
}

// Append records a newly discovered pair for a quiz, creating the quiz on
// first sight. Entries are never edited; an exact normalized duplicate of an
// existing entry is skipped. Returns true when the cache changed.
func (f *File) Append(name, path, question, answer string) bool {
	index := -1
	for i, quiz := range f.quizzes {
		if quiz.Name == name {
			index = i
			break
		}
	}
	if index == -1 {
		f.quizzes = append(f.quizzes, Quiz{Name: name, Path: path})
		index = len(f.quizzes) - 1
	}
	normalized := match.Normalize(question)
	for _, entry := range f.quizzes[index].Entries {
		if match.Normalize(entry.Question) == normalized {
			return false
		}
	}
	f.quizzes[index].Entries = append(f.quizzes[index].Entries, Entry{Question: question, Answer: answer})
	f.dirty = true
	return true
}

// Dirty reports whether the cache has unsaved changes.
func (f *File) Dirty() bool {
	return f.dirty
}

// Save writes the cache back when dirty. The write goes through a temp file
// rename so a crash cannot truncate the cache.
func (f *File) Save() error {
	if !f.dirty {
		return nil
	}
	payload, err := json.MarshalIndent(document{Quizzes: f.quizzes}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quiz file: %w", err)
	}
	payload = append(payload, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create quiz file dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp quiz file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp quiz file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp quiz file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace quiz file: %w", err)
	}
	f.dirty = false
	return nil
}
