//go:build unix

package snapshot

import (
	"os/user"
	"strconv"
	"syscall"

	"github.com/haslund/reorg/internal/fsops"
)

// ownerOf resolves the owning user and group names of path. Backends
// without ownership metadata (such as the in-memory filesystem) yield
// empty strings.
func ownerOf(fs fsops.FS, path string) (string, string) {
	info, err := fs.Stat(path)
	if err != nil {
		return "", ""
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", ""
	}

	owner := strconv.FormatUint(uint64(stat.Uid), 10)
	if u, err := user.LookupId(owner); err == nil {
		owner = u.Username
	}
	group := strconv.FormatUint(uint64(stat.Gid), 10)
	if g, err := user.LookupGroupId(group); err == nil {
		group = g.Name
	}
	return owner, group
}
