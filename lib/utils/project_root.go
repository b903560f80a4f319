package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

// rootMarkers identify the module root, cdk.json sits next to go.mod.
var rootMarkers = []string{"cdk.json", "go.mod"}

// GetProjectRootDir returns the absolute path of the module root.
//
// $PROJECT_ROOT wins when set. Otherwise the directories above this source
// file are searched for one of rootMarkers, which keeps paths stable no
// matter which package's tests are running.
//
// Panics if neither succeeds.
func GetProjectRootDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return filepath.Clean(root)
	}

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		panic("GetProjectRootDir: runtime.Caller failed (cannot determine source path)")
	}
	if root := climb(filepath.Dir(thisFile)); root != "" {
		return root
	}

	panic("GetProjectRootDir: module root not found, set $PROJECT_ROOT")
}

// ProjectPath joins elem onto the module root.
func ProjectPath(elem ...string) string {
	return filepath.Join(append([]string{GetProjectRootDir()}, elem...)...)
}

func climb(dir string) string {
	for {
		for _, m := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
