package assets

import "embed"

//go:embed css
var FS embed.FS
