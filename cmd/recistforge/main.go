package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/mrsinham/recistforge/cmd/recistforge/wizard"
	"github.com/mrsinham/recistforge/internal/cohort"
	"github.com/mrsinham/recistforge/internal/complexity"
	"github.com/mrsinham/recistforge/internal/lexicon"
	"github.com/mrsinham/recistforge/internal/report"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Check for wizard subcommand (before flag.Parse)
	if len(os.Args) > 1 && os.Args[1] == "wizard" {
		// Extract --from flag if present
		var fromConfig string
		for i, arg := range os.Args[2:] {
			if arg == "--from" && i+3 < len(os.Args) {
				fromConfig = os.Args[i+3]
			}
		}
		if err := wizard.Run(fromConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	outputDir := flag.String("out-dir", "synth_patients", "Output directory")
	nPatients := flag.Int("n-patients", 20, "Number of patients to generate")
	minTP := flag.Int("min-tp", 3, "Minimum timepoints per patient")
	maxTP := flag.Int("max-tp", 6, "Maximum timepoints per patient")
	seed := flag.Int64("seed", 0, "Seed for reproducibility (auto-generated from output directory if not specified)")
	workers := flag.Int("workers", 0, fmt.Sprintf("Number of parallel workers (default: %d = CPU cores)", runtime.NumCPU()))

	style := flag.String("style", "structured", "Report style: structured, impression_first, narrative")
	includeNegatives := flag.Bool("include-negatives", false, "Include canned negatives in every organ section")
	metRate := flag.Float64("met-rate", 0.35, "Probability a patient has distant metastases at baseline (0-1)")
	uncertaintyMix := flag.Float64("uncertainty-mix", 0.2, "Probability of hedged impressions (0-1)")
	unitMix := flag.Float64("unit-mix", 0.7, "Probability a measurement renders in mm rather than cm (0-1)")
	primaryMix := flag.String("primary-mix", strings.Join(lexicon.PrimarySites, ","),
		"Comma-separated primary sites to draw from")

	complexityLevel := flag.String("complexity", "C2", "Complexity level: C0-C5")
	complexityConfig := flag.String("complexity-config", "", "Load complexity levels from YAML file (built-in defaults if not specified)")

	emitDICOM := flag.Bool("emit-dicom", false, "Write a metadata-only DICOM study alongside each report")

	interactive := flag.Bool("interactive", false, "Launch interactive wizard")
	flag.BoolVar(interactive, "i", false, "Launch interactive wizard (shortcut)")
	configFile := flag.String("config", "", "Load configuration from YAML file")
	saveConfig := flag.String("save-config", "", "Save configuration to YAML file (after generation)")

	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	// Handle interactive mode
	if *interactive {
		if err := wizard.Run(""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Handle config file loading
	if *configFile != "" {
		state, err := wizard.LoadFromYAML(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		opts, err := wizard.ToCohortOptions(state)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting config: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("recistforge")
		fmt.Println("===========")
		fmt.Printf("Loading config from %s\n\n", *configFile)

		if _, err := cohort.GenerateCohort(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating cohort: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Show version
	if *showVersion {
		fmt.Printf("recistforge %s\n", version)
		os.Exit(0)
	}

	// Show help
	if *help {
		printHelp()
		os.Exit(0)
	}

	// Validate arguments
	if *nPatients <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --n-patients must be > 0\n")
		printUsage()
		os.Exit(1)
	}
	if *minTP < 1 {
		fmt.Fprintf(os.Stderr, "Error: --min-tp must be >= 1\n")
		printUsage()
		os.Exit(1)
	}
	if *maxTP < *minTP {
		fmt.Fprintf(os.Stderr, "Error: --max-tp cannot be below --min-tp\n")
		os.Exit(1)
	}

	// Parse style
	parsedStyle, err := report.ParseStyle(*style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Parse primary mix
	var parsedPrimaryMix []string
	for _, site := range strings.Split(*primaryMix, ",") {
		site = strings.TrimSpace(site)
		if site != "" {
			parsedPrimaryMix = append(parsedPrimaryMix, site)
		}
	}

	// Load or default the complexity config
	cfg := complexity.DefaultConfig()
	if *complexityConfig != "" {
		loaded, err := complexity.LoadConfig(*complexityConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading complexity config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		fmt.Printf("Complexity config loaded from %s\n", *complexityConfig)
	}

	opts := cohort.Options{
		OutputDir:        *outputDir,
		NumPatients:      *nPatients,
		MinTimepoints:    *minTP,
		MaxTimepoints:    *maxTP,
		Seed:             *seed,
		Style:            parsedStyle,
		IncludeNegatives: *includeNegatives,
		MetRate:          *metRate,
		UncertaintyMix:   *uncertaintyMix,
		UnitMix:          *unitMix,
		PrimaryMix:       parsedPrimaryMix,
		ComplexityLevel:  *complexityLevel,
		ComplexityConfig: cfg,
		EmitDICOM:        *emitDICOM,
		Workers:          *workers,
	}

	fmt.Println("recistforge")
	fmt.Println("===========")
	fmt.Println()

	if _, err := cohort.GenerateCohort(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating cohort: %v\n", err)
		os.Exit(1)
	}

	// Save config if requested
	if *saveConfig != "" {
		state := wizard.FromCohortOptions(opts)
		if err := wizard.SaveToYAML(state, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  recistforge [options]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}

func printHelp() {
	fmt.Println("recistforge")
	fmt.Println("===========")
	fmt.Println()
	fmt.Println("Generate synthetic longitudinal oncology CT reports with RECIST 1.1 ground truth.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  recistforge [options]")
	fmt.Println("  recistforge wizard [--from config.yaml]")
	fmt.Println()
	fmt.Println("Cohort options:")
	fmt.Println("  --out-dir <DIR>       Output directory (default: 'synth_patients')")
	fmt.Println("  --n-patients <N>      Number of patients (default: 20)")
	fmt.Println("  --min-tp <N>          Minimum timepoints per patient (default: 3)")
	fmt.Println("  --max-tp <N>          Maximum timepoints per patient (default: 6)")
	fmt.Println("  --seed <N>            Seed for reproducibility (auto-generated if not specified)")
	fmt.Printf("  --workers <N>         Number of parallel workers (default: %d = CPU cores)\n", runtime.NumCPU())
	fmt.Println()
	fmt.Println("Report options:")
	fmt.Println("  --style <STYLE>       structured, impression_first, narrative (default: structured)")
	fmt.Println("  --include-negatives   Include canned negatives in every organ section")
	fmt.Println("  --met-rate <P>        Probability of distant metastases at baseline (default: 0.35)")
	fmt.Println("  --uncertainty-mix <P> Probability of hedged impressions (default: 0.2)")
	fmt.Println("  --unit-mix <P>        Probability a measurement renders in mm over cm (default: 0.7)")
	fmt.Println("  --primary-mix <LIST>  Comma-separated primary sites (default: all)")
	fmt.Println()
	fmt.Println("Complexity options:")
	fmt.Println("  --complexity <LVL>    Complexity level C0-C5 (default: C2)")
	fmt.Println("  --complexity-config <FILE>")
	fmt.Println("                        Load complexity levels from YAML (built-in defaults otherwise)")
	fmt.Println()
	fmt.Println("Companion artifacts:")
	fmt.Println("  --emit-dicom          Write a metadata-only DICOM study next to each report")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println("  --interactive, -i     Launch interactive wizard")
	fmt.Println("  --config <FILE>       Load configuration from YAML file")
	fmt.Println("  --save-config <FILE>  Save configuration to YAML file after generation")
	fmt.Println()
	fmt.Println("  --help                Show this help message")
	fmt.Println("  --version             Show version")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Generate 50 patients with 3-6 timepoints each")
	fmt.Println("  recistforge --out-dir data/synth_patients --n-patients 50 --seed 42")
	fmt.Println()
	fmt.Println("  # Hard extraction benchmark with heavy report noise")
	fmt.Println("  recistforge --n-patients 100 --complexity C5 --include-negatives")
	fmt.Println()
	fmt.Println("  # Lung-only cohort, impression-first style")
	fmt.Println("  recistforge --primary-mix lung --style impression_first")
	fmt.Println()
	fmt.Println("  # Reports plus metadata-only DICOM stubs")
	fmt.Println("  recistforge --n-patients 10 --emit-dicom")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  <out-dir>/patients/<PID>/<YYYY-MM-DD>/report.txt   organ-structured report")
	fmt.Println("  <out-dir>/patients/<PID>/<YYYY-MM-DD>/meta.json    RECIST ground truth")
	fmt.Println("  <out-dir>/cohort_labels.jsonl                      cohort-level index")
	fmt.Println()
	fmt.Println("Reproducibility:")
	fmt.Println("  Using the same seed ensures identical cohorts across runs.")
	fmt.Println("  Same output directory name also generates a consistent cohort.")
}
