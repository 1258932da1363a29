// Package extract — mis-encoding repair.
// Source pages occasionally ship UTF-8 text that was decoded as Latin-1
// somewhere upstream, leaving fixed artifact sequences in the markup.
package extract

import "strings"

// encodingRepairs maps each known artifact sequence to the intended
// character. Applied to the body HTML only; a pure string transform.
var encodingRepairs = strings.NewReplacer(
	"â€™", "’",
	"â€˜", "‘",
	"â€œ", "“",
	"â€", "”",
	"â€“", "–",
	"â€”", "—",
	"â€¦", "…",
	"â€¢", "•",
	"Â·", "·",
	"Â ", " ",
	"Ã—", "×",
)

// RepairEncoding restores characters mangled by double encoding.
func RepairEncoding(s string) string {
	return encodingRepairs.Replace(s)
}
