// Package tpl keeps parsed HTML pages keyed by their path.
package tpl

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"strings"
	"unicode/utf8"
)

const FileSuffix = ".gohtml"

type HTMLTemplateStore struct {
	Base map[string]*template.Template // each file → one template
}

func NewHTMLTemplateStore() *HTMLTemplateStore {
	return &HTMLTemplateStore{
		Base: make(map[string]*template.Template),
	}
}

// LoadBaseTemplates parses every *.gohtml under root in fsys. The key is the
// path relative to root without the suffix
func (s *HTMLTemplateStore) LoadBaseTemplates(fsys fs.FS, root string) error {
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		// Skip Hidden Files & Hidden Directories
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, FileSuffix) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		if !utf8.Valid(data) {
			return fmt.Errorf("file %s is not valid UTF-8", path)
		}
		key := strings.TrimSuffix(strings.TrimPrefix(path, root+"/"), FileSuffix)
		if _, exists := s.Base[key]; exists {
			return fmt.Errorf("duplicate template key detected: %s (file=%s)", key, path)
		}
		t, err := template.New(key).Parse(string(data))
		if err != nil {
			return fmt.Errorf("parse error in %s: %w", path, err)
		}
		s.Base[key] = t
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO][TEMPLATE] Loaded %d templates from %s", len(s.Base), root)
	return nil
}

// Execute renders the template under key
func (s *HTMLTemplateStore) Execute(w io.Writer, key string, data any) error {
	t, ok := s.Base[key]
	if !ok {
		return fmt.Errorf("template %q not found", key)
	}
	return t.Execute(w, data)
}
