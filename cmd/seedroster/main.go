// Command seedroster converts a class-roster Excel workbook into a SQL seed
// file for the event_classes table. The workbook carries one sheet per city,
// with the sheet name used as the city key.
// Usage: go run ./cmd/seedroster <roster.xlsx>
// Output: db/seeds/class_roster.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type rosterEntry struct {
	cityKey   string
	className string
	capacity  int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedroster <roster.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/class_roster.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []rosterEntry
	for _, sheetName := range f.GetSheetList() {
		sheetEntries, err := parseCitySheet(f, sheetName)
		if err != nil {
			return fmt.Errorf("parse sheet %q: %w", sheetName, err)
		}
		entries = append(entries, sheetEntries...)
		log.Printf("sheet %q: %d classes", sheetName, len(sheetEntries))
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Class roster seed data generated from Excel.",
		fmt.Sprintf("-- %d classes across all city sheets.", len(entries)),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for _, e := range entries {
		stmt := fmt.Sprintf(
			"INSERT INTO event_classes (id, event_id, class_name, capacity, created_at)"+
				" SELECT gen_random_uuid(), e.id, %s, %d, now() FROM events e WHERE e.city_key = %s"+
				" ON CONFLICT (event_id, class_name) DO NOTHING;",
			sqlQuote(e.className), e.capacity, sqlQuote(e.cityKey),
		)
		if werr := w(stmt); werr != nil {
			return fmt.Errorf("write entry: %w", werr)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d roster entries in %s", len(entries), outPath)
	return nil
}

// parseCitySheet reads one city sheet. Columns: A=class name, B=capacity.
// The first row is a header and is skipped. Duplicate class names within a
// sheet keep the first capacity seen.
func parseCitySheet(f *excelize.File, sheetName string) ([]rosterEntry, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	cityKey := strings.ToLower(strings.TrimSpace(sheetName))
	seen := make(map[string]bool)

	var entries []rosterEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		className := strings.TrimSpace(cellVal(row, 0))
		if className == "" || seen[className] {
			continue
		}
		seen[className] = true

		capacity := 0
		if capStr := strings.TrimSpace(cellVal(row, 1)); capStr != "" {
			if v, cerr := strconv.Atoi(capStr); cerr == nil {
				capacity = v
			}
		}

		entries = append(entries, rosterEntry{
			cityKey:   cityKey,
			className: className,
			capacity:  capacity,
		})
	}
	return entries, nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func sqlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
