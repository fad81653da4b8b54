// Package planner turns the raw per-path action declarations into a
// conflict-free, ordered sequence of filesystem operations.
//
// Key responsibilities:
//   - Resolve encapsulation conflicts between an action declared on a
//     directory and actions declared on its descendants
//   - Order the surviving actions so deeper paths execute before the
//     directories that contain them
//   - Drive the executor over the ordered sequence, aborting on the
//     first error
package planner
