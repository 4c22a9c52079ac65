// Package projectpath splits a user-supplied project location into an app name and a directory.
package projectpath

import (
	"os"
	"path/filepath"
	"strings"
)

// Parse splits raw into the project name and the directory path it lives in.
//
// The name is the last "/"-separated segment after removing at most one
// trailing slash. A trailing "." resolves to the
// base name of the current working directory. Scoped package names such as
// "apps/@acme/web" keep their scope: the name becomes "@acme/web" while the
// path drops every "@"-prefixed segment.
func Parse(raw string) (name, path string) {
	input := raw
	if len(input) > 1 {
		input = strings.TrimSuffix(input, "/")
	}

	segments := strings.Split(input, "/")
	name = segments[len(segments)-1]

	if name == "." {
		if cwd, err := os.Getwd(); err == nil {
			name = filepath.Base(cwd)
		}
	}

	scope := -1
	for i, s := range segments {
		if strings.HasPrefix(s, "@") {
			scope = i
			break
		}
	}
	if scope != -1 {
		name = strings.Join(segments[scope:], "/")
	}

	kept := make([]string, 0, len(segments))
	for _, s := range segments {
		if !strings.HasPrefix(s, "@") {
			kept = append(kept, s)
		}
	}

	return name, strings.Join(kept, "/")
}
