//go:build dev

package dashboard

import "io/fs"

// distFS is nil in dev mode; assets are served from disk by a local proxy.
var distFS fs.FS
