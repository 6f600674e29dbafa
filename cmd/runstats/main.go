package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
)

// runstats aggregates run parquet batches with DuckDB, straight off the
// files the evaluator writes. No data is imported; every query globs the
// directory in place.
func main() {
	dataDir := flag.String("data-dir", "data", "Directory containing run parquet batches")
	top := flag.Int("top", 10, "Number of best runs to show")
	flag.Parse()

	pattern := filepath.Join(*dataDir, "runs_*.parquet")

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Fatalf("Failed to open duckdb: %v", err)
	}
	defer db.Close()

	var runs, wins int64
	var avgScore, avgSteps float64
	err = db.QueryRow(fmt.Sprintf(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE win),
		       COALESCE(AVG(score), 0),
		       COALESCE(AVG(steps), 0)
		FROM read_parquet('%s')`, pattern)).Scan(&runs, &wins, &avgScore, &avgSteps)
	if err != nil {
		log.Fatalf("Failed to aggregate runs: %v", err)
	}

	fmt.Printf("Runs:      %d\n", runs)
	fmt.Printf("Wins:      %d (%.1f%%)\n", wins, pct(wins, runs))
	fmt.Printf("Avg Score: %.1f\n", avgScore)
	fmt.Printf("Avg Steps: %.1f\n", avgSteps)
	fmt.Println()

	rows, err := db.Query(fmt.Sprintf(`
		SELECT run_id, score, steps, win, caught
		FROM read_parquet('%s')
		ORDER BY score DESC
		LIMIT ?`, pattern), *top)
	if err != nil {
		log.Fatalf("Failed to query best runs: %v", err)
	}
	defer rows.Close()

	fmt.Printf("Top %d runs:\n", *top)
	for rows.Next() {
		var id string
		var score, steps int64
		var win, caught bool
		if err := rows.Scan(&id, &score, &steps, &win, &caught); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		fmt.Printf("  %-40s score=%-6d steps=%-4d win=%-5v caught=%v\n", id, score, steps, win, caught)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}
}

func pct(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
