// Package web holds the browser client served by the HTTP server.
package web

import "embed"

//go:embed index.html
var Static embed.FS
