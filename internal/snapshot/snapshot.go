// Package snapshot produces the hierarchical record of a directory
// tree that the review workbook is built from.
//
// The preferred producer is the external tree(1) tool, whose JSON
// output carries name, ownership, and cumulative size per entry. A
// pure-Go walker produces the same shape when tree is unavailable.
// Entry names are full paths (tree's -f flag), which is what makes the
// workbook rows addressable as action sources.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/haslund/reorg/internal/fsops"
)

// Entry types as emitted by tree. Report entries carry summary
// statistics and must be skipped by consumers.
const (
	TypeDirectory = "directory"
	TypeFile      = "file"
	TypeReport    = "report"
)

// Entry is one node of the snapshot.
type Entry struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	User     string  `json:"user,omitempty"`
	Group    string  `json:"group,omitempty"`
	Size     int64   `json:"size,omitempty"`
	Contents []Entry `json:"contents,omitempty"`
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Type == TypeDirectory
}

var (
	newlineRe      = regexp.MustCompile(`[\n\r]+`)
	trailingComma  = regexp.MustCompile(`,\s*\]`)
	treeArgs       = []string{"-ugfJ", "--du"}
	defaultRunTree = runTreeCommand
)

// ReadTree invokes tree(1) on dir and decodes its JSON output.
func ReadTree(ctx context.Context, dir string) ([]Entry, error) {
	raw, err := defaultRunTree(ctx, dir)
	if err != nil {
		return nil, err
	}
	return decodeTreeJSON(raw)
}

// TreeAvailable reports whether the tree binary can be found.
func TreeAvailable() bool {
	_, err := exec.LookPath("tree")
	return err == nil
}

func runTreeCommand(ctx context.Context, dir string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, "tree", append(treeArgs, dir)...).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run tree on %s: %w", dir, err)
	}
	return out, nil
}

// decodeTreeJSON repairs and decodes tree's JSON output. Versions of
// tree before 1.8.0 emit a trailing comma before the closing bracket,
// which the repair step removes after flattening newlines.
func decodeTreeJSON(raw []byte) ([]Entry, error) {
	flattened := newlineRe.ReplaceAll(raw, nil)
	repaired := trailingComma.ReplaceAll(flattened, []byte("]"))

	var entries []Entry
	if err := json.Unmarshal(repaired, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode tree output: %w", err)
	}
	return entries, nil
}

// Scan walks dir through the filesystem layer and builds the same
// entry shape tree would produce: full-path names, cumulative
// directory sizes, and a trailing report entry. Paths matching any of
// the exclude globs (against the root-relative path or the base name)
// are skipped.
func Scan(fs fsops.FS, dir string, excludes []string) ([]Entry, error) {
	dir = filepath.Clean(dir)

	root, stats, err := scanDir(fs, dir, dir, excludes)
	if err != nil {
		return nil, err
	}

	report := Entry{
		Type: TypeReport,
		Size: stats.size,
	}
	return []Entry{root, report}, nil
}

type scanStats struct {
	directories int
	files       int
	size        int64
}

func scanDir(fs fsops.FS, root, dir string, excludes []string) (Entry, scanStats, error) {
	entry := Entry{
		Name: dir,
		Type: TypeDirectory,
	}
	stats := scanStats{directories: 1}

	infos, err := fs.ReadDir(dir)
	if err != nil {
		return Entry{}, stats, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	owner, group := ownerOf(fs, dir)
	entry.User, entry.Group = owner, group

	for _, info := range infos {
		childPath := filepath.Join(dir, info.Name())
		if excluded(root, childPath, excludes) {
			continue
		}

		if info.IsDir() {
			child, childStats, err := scanDir(fs, root, childPath, excludes)
			if err != nil {
				return Entry{}, stats, err
			}
			entry.Contents = append(entry.Contents, child)
			entry.Size += child.Size
			stats.directories += childStats.directories
			stats.files += childStats.files
			stats.size += childStats.size
		} else {
			u, g := ownerOf(fs, childPath)
			entry.Contents = append(entry.Contents, Entry{
				Name:  childPath,
				Type:  TypeFile,
				User:  u,
				Group: g,
				Size:  info.Size(),
			})
			entry.Size += info.Size()
			stats.files++
			stats.size += info.Size()
		}
	}

	return entry, stats, nil
}

func excluded(root, path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

// Index flattens the snapshot into a path-keyed lookup, skipping
// report entries. The core consumes only existence and type per path.
func Index(entries []Entry) map[string]*Entry {
	index := make(map[string]*Entry)
	var walk func(es []Entry)
	walk = func(es []Entry) {
		for i := range es {
			e := &es[i]
			if e.Type == TypeReport {
				continue
			}
			index[filepath.Clean(e.Name)] = e
			walk(e.Contents)
		}
	}
	walk(entries)
	return index
}
