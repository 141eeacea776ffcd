package store

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/huangsam/atlas/schema"
)

// PrintStoreStatus prints store status information to stdout.
func PrintStoreStatus(status schema.StoreStatus) {
	writeStoreStatus(os.Stdout, status)
}

func writeStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Risk Scores: %d\n", status.TotalRiskScores)
	if status.TotalRiskScores > 0 {
		_, _ = fmt.Fprintf(w, "Last Score: %s\n", status.LastScoreTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Score: %s\n", status.OldestScoreTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
