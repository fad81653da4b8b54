//go:build !unix

package snapshot

import "github.com/haslund/reorg/internal/fsops"

// ownerOf has no ownership metadata to draw from on this platform.
func ownerOf(fs fsops.FS, path string) (string, string) {
	return "", ""
}
