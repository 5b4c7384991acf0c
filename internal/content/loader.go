// Package content loads the site's JSON content collections and answers the
// page-level lookups built on them.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/insightexus/site/internal/models"
)

// Content file names inside the content directory.
const (
	BlogFile     = "blog.json"
	ProjectsFile = "projects.json"
	ServicesFile = "services.json"
	HomeFile     = "home.json"
)

// ErrNotFound is returned by lookups when no record has the requested slug.
var ErrNotFound = errors.New("content not found")

// LoadError reports a content file that could not be read or decoded.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads content collections from a directory.
type Loader struct {
	dir string
}

// NewLoader returns a loader for the JSON files in dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the content directory.
func (l *Loader) Dir() string { return l.dir }

// Decoded is the outcome of decoding one collection: the records that decoded and how
// many array elements were skipped because they did not fit the record shape.
type Decoded[T any] struct {
	Items   []T
	Skipped int
}

// LoadArticles reads blog.json ({"posts": [...]}).
func (l *Loader) LoadArticles() (Decoded[models.Article], error) {
	return loadCollection[models.Article](l.path(BlogFile), "posts")
}

// LoadCaseStudies reads projects.json, which may be {"projects": [...]} or a bare array.
func (l *Loader) LoadCaseStudies() (Decoded[models.CaseStudy], error) {
	return loadCollection[models.CaseStudy](l.path(ProjectsFile), "projects")
}

// LoadOfferings reads services.json ({"services": [...]}).
func (l *Loader) LoadOfferings() (Decoded[models.Offering], error) {
	return loadCollection[models.Offering](l.path(ServicesFile), "services")
}

// LoadHome reads home.json. A missing file yields an empty Home.
func (l *Loader) LoadHome() (models.Home, error) {
	var home models.Home
	data, err := os.ReadFile(l.path(HomeFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return home, nil
		}
		return home, &LoadError{File: HomeFile, Err: err}
	}
	if err := json.Unmarshal(data, &home); err != nil {
		return home, &LoadError{File: HomeFile, Err: err}
	}
	return home, nil
}

// Load reads every collection. On failure it returns the joined LoadErrors and a nil snapshot.
func (l *Loader) Load() (*Snapshot, error) {
	articles, aErr := l.LoadArticles()
	caseStudies, cErr := l.LoadCaseStudies()
	offerings, oErr := l.LoadOfferings()
	home, hErr := l.LoadHome()
	if err := errors.Join(aErr, cErr, oErr, hErr); err != nil {
		return nil, err
	}
	return &Snapshot{
		Articles:    articles.Items,
		CaseStudies: caseStudies.Items,
		Offerings:   offerings.Items,
		Home:        home,
		Skipped:     articles.Skipped + caseStudies.Skipped + offerings.Skipped,
		LoadedAt:    time.Now(),
	}, nil
}

func (l *Loader) path(name string) string {
	return filepath.Join(l.dir, name)
}

func loadCollection[T any](path, key string) (Decoded[T], error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Decoded[T]{}, &LoadError{File: name, Err: err}
	}
	out, err := decodeCollection[T](data, key)
	if err != nil {
		return Decoded[T]{}, &LoadError{File: name, Err: err}
	}
	return out, nil
}

// decodeCollection accepts either {"<key>": [...]} or a bare array. A missing or null key
// is an empty collection. Elements that fail to decode are counted and skipped.
func decodeCollection[T any](data []byte, key string) (Decoded[T], error) {
	var elems []json.RawMessage
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return Decoded[T]{}, err
		}
	} else {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return Decoded[T]{}, err
		}
		raw, ok := wrapper[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return Decoded[T]{}, nil
		}
		if err := json.Unmarshal(raw, &elems); err != nil {
			return Decoded[T]{}, fmt.Errorf("%q is not an array: %w", key, err)
		}
	}

	out := Decoded[T]{Items: make([]T, 0, len(elems))}
	for _, e := range elems {
		var item T
		if err := json.Unmarshal(e, &item); err != nil {
			out.Skipped++
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
