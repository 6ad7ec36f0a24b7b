package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"case-renamer/internal/database"
	"case-renamer/internal/exitcodes"
)

func main() {
	dbPath := flag.String("db", "renames.db", "Path to rename history database")
	recent := flag.Int("recent", 0, "Show N most recent rename attempts")
	stats := flag.Bool("stats", false, "Show rename statistics")
	action := flag.String("action", "", "Filter by action (RENAME, ERROR)")
	dirPattern := flag.String("dir", "", "Filter by directory pattern (SQL LIKE syntax)")
	days := flag.Int("days", 30, "Number of days for statistics")
	prune := flag.Int("prune", 0, "Delete records older than N days, then vacuum")
	jsonOutput := flag.Bool("json", false, "Output in JSON format")
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		log.Printf("ERROR: database %s: %v", *dbPath, err)
		os.Exit(exitcodes.InvalidConfig)
	}

	db, err := database.NewRenameDB(*dbPath)
	if err != nil {
		log.Printf("ERROR: Failed to open database %s: %v", *dbPath, err)
		os.Exit(exitcodes.RuntimeError)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()

	switch {
	case *prune > 0:
		err = runPrune(db, *prune)
	case *stats:
		err = showStats(db, *days, *jsonOutput)
	case *recent > 0:
		records, qerr := db.GetRecentRenames(*recent)
		err = showRecords(records, qerr, *jsonOutput)
	case *action != "":
		records, qerr := db.GetRenamesByAction(*action)
		err = showRecords(records, qerr, *jsonOutput)
	case *dirPattern != "":
		records, qerr := db.GetRenamesByDirectory(*dirPattern)
		err = showRecords(records, qerr, *jsonOutput)
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  case-renamer-query -db renames.db -recent 10       # Show 10 most recent attempts")
		fmt.Println("  case-renamer-query -db renames.db -stats           # Show rename statistics")
		fmt.Println("  case-renamer-query -db renames.db -action ERROR    # Show only failures")
		fmt.Println("  case-renamer-query -db renames.db -dir '/data/%'   # Show renames under /data")
		fmt.Println("  case-renamer-query -db renames.db -prune 90        # Drop records older than 90 days")
		return
	}

	if err != nil {
		log.Printf("ERROR: %v", err)
		db.Close()
		os.Exit(exitcodes.RuntimeError)
	}
}

func runPrune(db *database.RenameDB, days int) error {
	n, err := db.DeleteOldRecords(days)
	if err != nil {
		return fmt.Errorf("prune records: %w", err)
	}
	if err := db.Vacuum(); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	fmt.Printf("Deleted %d records older than %d days\n", n, days)
	return nil
}

func showStats(db *database.RenameDB, days int, jsonOutput bool) error {
	stats, err := db.GetRenameStats(days)
	if err != nil {
		return fmt.Errorf("get statistics: %w", err)
	}

	if jsonOutput {
		return printJSON(stats)
	}

	fmt.Printf("Rename Statistics (Last %d days)\n", days)
	fmt.Printf("Period: %s to %s\n\n", stats.StartDate.Format("2006-01-02"), stats.EndDate.Format("2006-01-02"))
	fmt.Printf("Total Renames:  %d\n", stats.TotalRenames)
	fmt.Printf("Total Errors:   %d\n\n", stats.TotalErrors)

	if len(stats.ByDirectory) > 0 {
		dirs := make([]string, 0, len(stats.ByDirectory))
		for d := range stats.ByDirectory {
			dirs = append(dirs, d)
		}
		sort.Strings(dirs)

		fmt.Println("By Directory:")
		for _, d := range dirs {
			fmt.Printf("  %-40s %d\n", d, stats.ByDirectory[d])
		}
	}
	return nil
}

func showRecords(records []database.RenameRecord, err error, jsonOutput bool) error {
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	if jsonOutput {
		return printJSON(records)
	}
	printRecords(records)
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printRecords(records []database.RenameRecord) {
	if len(records) == 0 {
		fmt.Println("No records found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTimestamp\tAction\tDirectory\tOld\tNew\tError")
	_, _ = fmt.Fprintln(w, "--\t---------\t------\t---------\t---\t---\t-----")

	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Action, r.Directory, r.OldName, r.NewName, r.ErrorMessage)
	}
	_ = w.Flush()
}
