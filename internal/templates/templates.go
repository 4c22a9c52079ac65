// Package templates contains embedded template files.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed config.template

// ConfigYAML contains the embedded configuration template.
var ConfigYAML []byte

//go:embed env.template

// EnvFile contains the embedded environment file template.
var EnvFile []byte

//go:embed start-database/*.sh
var scripts embed.FS

// StartDatabaseDir is the directory holding the database scripts inside a template FS.
const StartDatabaseDir = "start-database"

// Scripts returns the built-in template FS. Its layout matches an on-disk
// template directory: start-database/<provider>.sh plus start-database/stop-database.sh.
func Scripts() fs.FS {
	return scripts
}
