package utils

import (
	"path/filepath"
)

// maxWalkUpDepth prevents endless loops on unusual paths
const maxWalkUpDepth = 64

// WalkUp calls visit for dir and each of its parents, nearest first,
// until visit reports done, returns an error, or the filesystem root is reached
func WalkUp(dir string, visit func(dir string) (done bool, err error)) error {
	dir = filepath.Clean(dir)
	for iterations := 0; iterations < maxWalkUpDepth; iterations++ {
		done, err := visit(dir)
		if err != nil || done {
			return err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
	return nil
}
