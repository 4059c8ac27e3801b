package main

import (
	"flag"
	"fmt"
	"log"
	"messenger/internal"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// Record prefixes, in the order they are listed by -prefix=all.
var recordPrefixes = []string{"user:", "session:", "chat:", "msg:", "notif:", "auth:", "media:", "attachment:"}

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	// Record prefixes only by default, the idx: entries are noisy
	prefix := flag.String("prefix", "all", "Prefix to scan, or all for every record type")
	limit := flag.Int("limit", 100, "Maximum rows per prefix")
	colours := flag.Bool("colours", true, "Colorize section headers")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	prefixes := []string{*prefix}
	if *prefix == "all" {
		prefixes = recordPrefixes
	}

	for _, p := range prefixes {
		rows, err := internal.ScanRows(db, p, *limit)
		if err != nil {
			log.Fatal(err)
		}
		if len(rows) == 0 {
			continue
		}

		header := fmt.Sprintf("====== %s (%d) ======", strings.TrimSuffix(p, ":"), len(rows))
		if *colours {
			header = color.New(color.BgBlack, color.FgGreen).Render(header)
		}
		fmt.Println(header)
		render(rows)
		fmt.Println()
	}
}

func render(rows []internal.InspectRow) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Entity ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, row := range rows {
		timestamp := row.Timestamp
		if timestamp == "" {
			timestamp = "--"
		}
		// The first 8 characters of the id are enough to tell records apart
		table.Append([]string{row.Key, row.Type, timestamp, shortID(row.EntityID), row.Detail})
	}
	table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
