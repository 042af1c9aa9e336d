package tracker

import (
	"fmt"
	"strings"
	"time"
)

const csvHeader = "Numéro,Nombre de tirages"

// ExportStatisticsCSV renders the call counts as a two-column CSV table: one
// row per number 1..90 in ascending order, count 0 when a number was never
// called. Pure function of the statistics map.
func (s *State) ExportStatisticsCSV() string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for n := MinNumber; n <= MaxNumber; n++ {
		fmt.Fprintf(&b, "%d,%d\n", n, s.Statistics[n])
	}
	return b.String()
}

// ExportFilename returns the download name for a statistics export,
// e.g. "statistiques_loto_2026-09-01.csv".
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("statistiques_loto_%s.csv", now.Format("2006-01-02"))
}
