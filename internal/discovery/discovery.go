package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/IARD-Solutions/solidity-analyzer/internal/solidity"
)

// SourceFile is a read-only snapshot of one project source file, taken at
// analysis time and never mutated afterwards.
type SourceFile struct {
	Path    string // absolute path, the file's identity
	RelPath string // project-relative path with forward slashes
	Content string
}

// Reader supplies file contents. Implementations may serve unsaved editor
// buffer state instead of the on-disk content.
type Reader interface {
	ReadFile(path string) (string, error)
}

// DiskReader reads file contents from the filesystem.
type DiskReader struct{}

func (DiskReader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Service walks a project tree and snapshots its Solidity sources.
type Service struct {
	logger      hclog.Logger
	reader      Reader
	excludeDirs []string
}

// New creates a discovery service. A nil reader falls back to disk reads.
func New(logger hclog.Logger, reader Reader, excludeDirs []string) *Service {
	if reader == nil {
		reader = DiskReader{}
	}
	return &Service{
		logger:      logger,
		reader:      reader,
		excludeDirs: excludeDirs,
	}
}

// Discover walks the project root and returns snapshots of every Solidity
// source found, sorted by path. Excluded and hidden directories are skipped.
// A file that cannot be read is logged and skipped; it never aborts the walk.
func (s *Service) Discover(root string) ([]SourceFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root %q: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("project root is not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %q is not a directory", root)
	}

	var sources []SourceFile
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != absRoot && s.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !solidity.IsSourceFile(path) {
			return nil
		}

		file, err := s.snapshot(absRoot, path)
		if err != nil {
			s.logger.Warn("failed to read source file, skipping", "path", path, "error", err)
			return nil
		}
		sources = append(sources, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project root %q: %w", root, err)
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// Load snapshots a single source file relative to the project root.
func (s *Service) Load(root, path string) (SourceFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to resolve project root %q: %w", root, err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	return s.snapshot(absRoot, absPath)
}

func (s *Service) snapshot(absRoot, absPath string) (SourceFile, error) {
	content, err := s.reader.ReadFile(absPath)
	if err != nil {
		return SourceFile{}, err
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		rel = filepath.Base(absPath)
	}

	return SourceFile{
		Path:    absPath,
		RelPath: filepath.ToSlash(rel),
		Content: content,
	}, nil
}

func (s *Service) skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, excluded := range s.excludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}
