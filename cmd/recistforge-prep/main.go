package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrsinham/recistforge/internal/prep"
)

func main() {
	inDir := flag.String("in-dir", "", "Directory containing .txt reports (required)")
	outDir := flag.String("out-dir", "", "Directory for train/val/test JSON Lines (required)")
	flag.Parse()

	if *inDir == "" || *outDir == "" {
		fmt.Fprintln(os.Stderr, "Error: --in-dir and --out-dir are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := prep.Run(*inDir, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Splits written to %s\n", *outDir)
}
