package planner

import (
	"log/slog"
	"sort"

	"github.com/haslund/reorg/internal/action"
	"github.com/haslund/reorg/internal/fsops"
)

// Prioritize returns the actions ordered by priority descending, so
// the deepest paths execute first and no directory is touched before
// the actions on its descendants. Ties break on source path for a
// deterministic order.
func Prioritize(actions map[string]*action.Action) []*action.Action {
	ordered := make([]*action.Action, 0, len(actions))
	for _, a := range actions {
		ordered = append(ordered, a)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].Source < ordered[j].Source
	})
	return ordered
}

// PerformAll resolves, orders, and performs the declared actions in
// sequence, returning the actions that completed. The first error
// aborts the remaining actions; there is no rollback of actions
// already applied.
func PerformAll(fs fsops.FS, log *slog.Logger, actions map[string]*action.Action, dryRun bool) ([]*action.Action, error) {
	resolved, err := Resolve(fs, log, actions)
	if err != nil {
		return nil, err
	}

	executor := action.NewExecutor(fs, log, dryRun)
	performed := make([]*action.Action, 0, len(resolved))
	for _, a := range Prioritize(resolved) {
		if err := executor.Perform(a); err != nil {
			return performed, err
		}
		performed = append(performed, a)
	}
	return performed, nil
}
