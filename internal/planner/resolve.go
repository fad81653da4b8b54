package planner

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/haslund/reorg/internal/action"
	"github.com/haslund/reorg/internal/fsops"
	"github.com/haslund/reorg/internal/pathutil"
)

// Resolve rewrites the declared action set into a minimal,
// non-conflicting collection.
//
// For every declaration the ancestors of its path are walked nearest to
// farthest, stopping at the first ancestor that also carries a declared
// action whose original kind is not Ignore. Against that ancestor:
//
//   - an equal kind makes this action redundant and it is dropped
//   - an Ignore under a Copy becomes an exclusion on the ancestor
//   - an Ignore under a Move becomes a Delete at the same path, since
//     the move would otherwise leave the ignored path orphaned
//
// Farther ancestors are never inspected once one qualifies. Resolution
// works on a copied set so rewrites do not perturb the iteration over
// the original declarations; resolving an already-resolved set is a
// no-op.
func Resolve(fs fsops.FS, log *slog.Logger, actions map[string]*action.Action) (map[string]*action.Action, error) {
	if log == nil {
		log = slog.Default()
	}

	resolved := make(map[string]*action.Action, len(actions))
	for path, a := range actions {
		resolved[path] = a.Clone()
	}

	// Deterministic walk over the original declarations; lexical order
	// visits ancestors before their descendants.
	paths := make([]string, 0, len(actions))
	for path := range actions {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		a := actions[path]

		for _, ancestor := range pathutil.Ancestors(path) {
			ancestorAction, ok := resolved[ancestor]
			if !ok {
				continue
			}
			// Qualification reads the original declaration: an
			// ancestor rewritten mid-resolution keeps its declared
			// kind for this test.
			if actions[ancestor].Kind == action.Ignore {
				continue
			}

			switch {
			case ancestorAction.Kind == a.Kind:
				log.Info("removing encapsulated action", "action", a.String(), "ancestor", ancestorAction.String())
				delete(resolved, path)

			case a.Kind == action.Ignore:
				switch ancestorAction.Kind {
				case action.Copy:
					log.Info("adding ignored descendant to copy", "path", path, "ancestor", ancestorAction.String())
					sourceIsFile, err := isFile(fs, ancestorAction.Source)
					if err != nil {
						return nil, err
					}
					if err := ancestorAction.IgnoreSubfolder(path, sourceIsFile); err != nil {
						return nil, err
					}
					delete(resolved, path)

				case action.Move:
					log.Info("converting ignore into delete", "path", path, "ancestor", ancestorAction.String())
					del, err := action.New(action.Delete, a.Source, "", a.Priority)
					if err != nil {
						return nil, fmt.Errorf("failed to rewrite ignore at %s: %w", path, err)
					}
					resolved[path] = del
				}
			}

			// Only the nearest qualifying ancestor applies.
			break
		}
	}

	return resolved, nil
}

// isFile reports whether path exists and is a regular entry rather
// than a directory. A missing path counts as not-a-file.
func isFile(fs fsops.FS, path string) (bool, error) {
	exists, err := fs.Exists(path)
	if err != nil || !exists {
		return false, err
	}
	isDir, err := fs.IsDir(path)
	if err != nil {
		return false, err
	}
	return !isDir, nil
}
