// Package web carries the embedded planner UI.
package web

import _ "embed"

// IndexHTML is the single-page planner interface served at the root.
//
//go:embed index.html
var IndexHTML string
