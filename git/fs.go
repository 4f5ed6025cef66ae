package git

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
)

// isMemoryFilesystem reports whether fs is backed by memfs. Paths on a
// memory filesystem are used as given instead of being made absolute against
// the process working directory.
func isMemoryFilesystem(fs billy.Basic) bool {
	for fs != nil {
		if _, ok := fs.(*memfs.Memory); ok {
			return true
		}
		u, ok := fs.(interface{ Underlying() billy.Basic })
		if !ok {
			return false
		}
		fs = u.Underlying()
	}
	return false
}
