// ABOUTME: Embeds the default enhancement instruction template into the binary
// ABOUTME: Provides the compiled-in fallback when the disk copy is absent or unreadable

package instructions

import _ "embed"

//go:embed templates/boost.prompt.md
var defaultTemplate string
