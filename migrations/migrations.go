// Package migrations embeds the league store schema so stores can be
// created on demand without shipping SQL files alongside the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
