// Package templates embeds the default output templates.
package templates

import "embed"

//go:embed *.tmpl
var FS embed.FS
