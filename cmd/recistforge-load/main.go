package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrsinham/recistforge/internal/loader"
)

func main() {
	inFile := flag.String("in-file", "", "Prepared examples JSON Lines file (required)")
	dsn := flag.String("dsn", "", "Postgres DSN (required)")
	flag.Parse()

	if *inFile == "" || *dsn == "" {
		fmt.Fprintln(os.Stderr, "Error: --in-file and --dsn are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	reports, err := loader.ReadReportsFile(*inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := loader.New(ctx, *dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	inserted, err := db.LoadReports(ctx, reports)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d reports.\n", inserted)
}
