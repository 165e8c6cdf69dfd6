package checker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hlop3z/sqlcheck/internal/alerr"
)

// Fixture defaults.
const (
	DefaultDatabase = "imdb-cmudb2022.db"
	DefaultRefDir   = "ref"
	ReferenceExt    = ".ref"
)

// Layout locates the fixtures of one grading directory. All paths derive from
// BaseDir; the working directory of the caller is never consulted.
type Layout struct {
	BaseDir  string // directory holding <name>.sql and the database
	Database string // database file name, relative to BaseDir unless absolute
	RefDir   string // reference directory, relative to BaseDir unless absolute
}

// NewLayout returns a layout rooted at baseDir with the default fixture names.
func NewLayout(baseDir string) Layout {
	return Layout{
		BaseDir:  baseDir,
		Database: DefaultDatabase,
		RefDir:   DefaultRefDir,
	}
}

// SubmissionPath returns <base>/<name>.sql.
func (l Layout) SubmissionPath(name string) string {
	return filepath.Join(l.BaseDir, name+SubmissionExt)
}

// ReferencePath returns <base>/<ref dir>/<name>.ref.
func (l Layout) ReferencePath(name string) string {
	return filepath.Join(l.resolve(l.RefDir, DefaultRefDir), name+ReferenceExt)
}

// DatabasePath returns the database fixture path.
func (l Layout) DatabasePath() string {
	return l.resolve(l.Database, DefaultDatabase)
}

func (l Layout) resolve(p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.BaseDir, p)
}

// Submissions lists the test names that have a submission in the base directory.
func (l Layout) Submissions() ([]string, error) {
	entries, err := os.ReadDir(l.BaseDir)
	if err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to list base directory").
			WithPath(l.BaseDir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SubmissionExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), SubmissionExt))
	}
	sort.Strings(names)
	return names, nil
}

// ExecutableDir returns the directory of the running binary with symlinks
// resolved, so a linked install still finds its fixtures.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", alerr.Wrap(alerr.EInternalError, err, "failed to locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
