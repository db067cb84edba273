// Package web embeds the static dashboard frontend.
package web

import "embed"

// Assets holds the embedded frontend files under static/.
//
//go:embed static
var Assets embed.FS
