// Package action defines the unit of work of a migration run and the
// executor that performs it against a filesystem.
//
// An Action binds a kind (ignore, copy, move, delete) to a source
// path, an optional target, a depth-derived priority, and a set of
// descendant paths excluded from its recursive effect. Actions are
// declared in the review workbook, rewritten by the planner, and
// consumed exactly once by the Executor.
package action

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Kind is the closed set of actions a declaration can request.
type Kind int

const (
	// NotDefined is the declaration placeholder. It is never
	// executable: performing it is always an error.
	NotDefined Kind = iota
	// Ignore leaves the source untouched.
	Ignore
	// Copy duplicates the source at the target.
	Copy
	// Move relocates the source to the target.
	Move
	// Delete removes the source.
	Delete
)

// kindNames are the exact strings used in the workbook's Action
// column. Matching is case-sensitive.
var kindNames = map[Kind]string{
	NotDefined: "Not defined",
	Ignore:     "Ignore",
	Copy:       "Copy",
	Move:       "Move",
	Delete:     "Delete",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindNames returns the workbook string forms of every kind, in
// declaration order.
func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for k := NotDefined; k <= Delete; k++ {
		names = append(names, kindNames[k])
	}
	return names
}

// ParseKind converts a workbook cell value into a Kind. The match is
// case-sensitive against the canonical names.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return NotDefined, fmt.Errorf("%w: unknown action %q", ErrInvalidArgument, s)
}

// Action is a single declared unit of work: apply Kind to Source,
// migrating to Target when the kind requires one.
type Action struct {
	Kind     Kind
	Source   string
	Target   string
	Priority int

	// excluded holds descendant paths under Source that a recursive
	// directory action must skip. Only meaningful on directory-bearing
	// actions.
	excluded map[string]bool

	// targetIsFile marks the target as a leaf file rather than a
	// containing directory. Derived from the target's name on
	// construction, and force-set by callers that already know the
	// source is a plain file.
	targetIsFile bool
}

// New constructs an Action, enforcing the declaration contract: the
// kind must be a known member of the closed set, and Copy/Move require
// a target.
func New(kind Kind, source, target string, priority int) (*Action, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, fmt.Errorf("%w: action kind must be defined", ErrInvalidArgument)
	}
	if (kind == Copy || kind == Move) && target == "" {
		return nil, fmt.Errorf("%w: target needs to be specified for %s on %s", ErrInvalidArgument, kind, source)
	}

	a := &Action{
		Kind:     kind,
		Source:   filepath.Clean(source),
		Priority: priority,
	}
	if target != "" {
		a.Target = filepath.Clean(target)
		// A name with an extension-like suffix reads as a file path.
		a.targetIsFile = filepath.Ext(a.Target) != ""
	}
	return a, nil
}

// TargetIsFile reports whether the target denotes a leaf file rather
// than a containing directory.
func (a *Action) TargetIsFile() bool {
	return a.targetIsFile
}

// MarkTargetAsFile force-sets the target-is-file flag. Used when the
// caller knows the source is a plain file, so an extension-less target
// name is not misread as a directory.
func (a *Action) MarkTargetAsFile() {
	a.targetIsFile = true
}

// IgnoreSubfolder registers path as excluded from this action's
// recursive effect. sourceIsFile is the declared type of the action's
// source: files have no descendants to exclude, so excluding under a
// file source is an error.
func (a *Action) IgnoreSubfolder(path string, sourceIsFile bool) error {
	if sourceIsFile {
		return fmt.Errorf("%w: source %s is a file and cannot contain other folders", ErrInvalidArgument, a.Source)
	}
	if a.excluded == nil {
		a.excluded = make(map[string]bool)
	}
	a.excluded[filepath.Clean(path)] = true
	return nil
}

// Excluded returns the excluded descendant paths in sorted order.
func (a *Action) Excluded() []string {
	if len(a.excluded) == 0 {
		return nil
	}
	out := make([]string, 0, len(a.excluded))
	for p := range a.excluded {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// excludedSet returns the underlying exclusion set. May be nil.
func (a *Action) excludedSet() map[string]bool {
	return a.excluded
}

// Clone returns a copy of the action with an independent exclusion set.
func (a *Action) Clone() *Action {
	c := *a
	if a.excluded != nil {
		c.excluded = make(map[string]bool, len(a.excluded))
		for p := range a.excluded {
			c.excluded[p] = true
		}
	}
	return &c
}

// String renders the action the way it is logged: "Move /src -> /dst".
func (a *Action) String() string {
	var sb strings.Builder
	sb.WriteString(a.Kind.String())
	sb.WriteString(" ")
	sb.WriteString(a.Source)
	if a.Kind == Copy || a.Kind == Move {
		sb.WriteString(" -> ")
		sb.WriteString(a.Target)
	}
	return sb.String()
}
