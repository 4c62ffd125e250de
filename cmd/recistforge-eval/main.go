package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrsinham/recistforge/internal/evalset"
)

func main() {
	preds := flag.String("preds", "", "Predictions JSON Lines file (required)")
	gold := flag.String("gold", "", "Gold JSON Lines file (required)")
	config := flag.String("config", "", "Evaluation config YAML (required)")
	flag.Parse()

	if *preds == "" || *gold == "" || *config == "" {
		fmt.Fprintln(os.Stderr, "Error: --preds, --gold and --config are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := evalset.LoadConfig(*config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	predRows, err := evalset.ReadJSONLines(*preds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading predictions: %v\n", err)
		os.Exit(1)
	}
	goldRows, err := evalset.ReadJSONLines(*gold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading gold: %v\n", err)
		os.Exit(1)
	}

	report := evalset.Evaluate(cfg, predRows, goldRows)
	fmt.Print(report.String())
}
