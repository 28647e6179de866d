// Package web embeds the single-page dashboard.
package web

import _ "embed"

//go:embed static/index.html
var index []byte

// Index returns the dashboard page.
func Index() []byte { return index }
