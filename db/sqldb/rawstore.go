package sqldb

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// RawStore holds named SQL statements for one database type
type RawStore struct {
	stmts map[string]string
}

func NewRawStore() *RawStore {
	return &RawStore{stmts: make(map[string]string)}
}

func (s *RawStore) Set(key string, rawStmt string) {
	s.stmts[key] = rawStmt
}

func (s *RawStore) Get(key string) (string, bool) {
	stmt, exists := s.stmts[key]
	return stmt, exists
}

// MustGet panics on a missing key. Statement keys are compile-time constants
func (s *RawStore) MustGet(key string) string {
	stmt, ok := s.stmts[key]
	if !ok {
		panic("sqldb: raw statement not loaded: " + key)
	}
	return stmt
}

func (s *RawStore) Len() int {
	return len(s.stmts)
}

type StoreGroupedStmtKey struct {
	Group    string
	StmtName string
}

func (k StoreGroupedStmtKey) String() string {
	return k.Group + "." + k.StmtName
}

// Load reads the statements in dir of fsys into the store under group.
// A file named <stmt>.<dbType> is a dialect and is used as-is.
// A file named <stmt>.sql is standard SQL with `?` placeholders, converted
// for dbType, and only used when no dialect file exists.
// Returns the number of statements stored.
func (s *RawStore) Load(fsys fs.FS, dir string, group string, dbType string) (int, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read sql dir %q: %w", dir, err)
	}
	prefix := PlaceholderPrefixForDBType[dbType]
	stmtCnt := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		filename := f.Name()
		ext := path.Ext(filename)
		name := strings.TrimSuffix(filename, ext)
		ext = strings.TrimPrefix(ext, ".")
		if ext != dbType && ext != "sql" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, filename))
		if err != nil {
			return stmtCnt, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		key := StoreGroupedStmtKey{Group: group, StmtName: name}.String()

		switch ext {
		case dbType:
			if _, exists := s.Get(key); !exists {
				stmtCnt++
			}
			s.Set(key, string(data))
		case "sql":
			if _, exists := s.Get(key); !exists {
				s.Set(key, ReplaceStaticPlaceholders(string(data), prefix))
				stmtCnt++
			}
		}
	}
	return stmtCnt, nil
}
