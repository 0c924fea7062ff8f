//go:build !dev

package dashboard

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var embeddedFS embed.FS

// distFS is non-nil in production builds.
var distFS fs.FS = embeddedFS
