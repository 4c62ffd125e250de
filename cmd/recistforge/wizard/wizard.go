package wizard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/recistforge/internal/cohort"
	"github.com/mrsinham/recistforge/internal/lexicon"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
)

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be > 0")
	}
	return nil
}

func validateProbability(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if f < 0 || f > 1 {
		return fmt.Errorf("must be within [0,1]")
	}
	return nil
}

// Run starts the interactive wizard for cohort generation. If fromConfig is
// provided, it seeds the form from that YAML file.
func Run(fromConfig string) error {
	state := DefaultState()
	if fromConfig != "" {
		absPath, err := filepath.Abs(fromConfig)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
		loaded, err := LoadFromYAML(absPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		state = loaded
	}

	fmt.Println(titleStyle.Render("recistforge cohort wizard"))

	numPatientsStr := strconv.Itoa(state.NumPatients)
	minTPStr := strconv.Itoa(state.MinTimepoints)
	maxTPStr := strconv.Itoa(state.MaxTimepoints)
	seedStr := strconv.FormatInt(state.Seed, 10)
	metRateStr := strconv.FormatFloat(state.MetRate, 'g', -1, 64)
	uncertaintyStr := strconv.FormatFloat(state.UncertaintyMix, 'g', -1, 64)
	unitMixStr := strconv.FormatFloat(state.UnitMix, 'g', -1, 64)

	var saveConfig bool
	configPath := "wizard-config.yaml"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Value(&state.OutputDir),
			huh.NewInput().
				Title("Number of patients").
				Value(&numPatientsStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Minimum timepoints per patient").
				Value(&minTPStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Maximum timepoints per patient").
				Value(&maxTPStr).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Seed (0 = derive from output directory)").
				Value(&seedStr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Report style").
				Options(
					huh.NewOption("Structured (FINDINGS then IMPRESSION)", "structured"),
					huh.NewOption("Impression first", "impression_first"),
					huh.NewOption("Narrative (flowing findings)", "narrative"),
				).
				Value(&state.Style),
			huh.NewSelect[string]().
				Title("Complexity level").
				Options(
					huh.NewOption("C0 - clean reports", "C0"),
					huh.NewOption("C1 - minimal noise", "C1"),
					huh.NewOption("C2 - routine clinical texture", "C2"),
					huh.NewOption("C3 - post-treatment changes", "C3"),
					huh.NewOption("C4 - heavy incidentals and artifacts", "C4"),
					huh.NewOption("C5 - maximum difficulty", "C5"),
				).
				Value(&state.ComplexityLevel),
			huh.NewMultiSelect[string]().
				Title("Primary sites in the mix").
				Options(huh.NewOptions(lexicon.PrimarySites...)...).
				Value(&state.PrimaryMix),
			huh.NewConfirm().
				Title("Include canned negatives in every organ section?").
				Value(&state.IncludeNegatives),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Metastasis rate [0,1]").
				Value(&metRateStr).
				Validate(validateProbability),
			huh.NewInput().
				Title("Uncertainty mix [0,1] (hedged impressions)").
				Value(&uncertaintyStr).
				Validate(validateProbability),
			huh.NewInput().
				Title("Unit mix [0,1] (probability of mm over cm)").
				Value(&unitMixStr).
				Validate(validateProbability),
			huh.NewConfirm().
				Title("Emit metadata-only DICOM studies?").
				Value(&state.EmitDICOM),
			huh.NewConfirm().
				Title("Save this configuration to wizard-config.yaml?").
				Value(&saveConfig),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("running wizard: %w", err)
	}

	state.NumPatients, _ = strconv.Atoi(numPatientsStr)
	state.MinTimepoints, _ = strconv.Atoi(minTPStr)
	state.MaxTimepoints, _ = strconv.Atoi(maxTPStr)
	state.Seed, _ = strconv.ParseInt(seedStr, 10, 64)
	state.MetRate, _ = strconv.ParseFloat(metRateStr, 64)
	state.UncertaintyMix, _ = strconv.ParseFloat(uncertaintyStr, 64)
	state.UnitMix, _ = strconv.ParseFloat(unitMixStr, 64)

	if saveConfig {
		if err := SaveToYAML(state, configPath); err != nil {
			fmt.Printf("Warning: could not save config: %v\n", err)
		} else {
			fmt.Printf("Configuration saved to %s\n", configPath)
		}
	}

	opts, err := ToCohortOptions(state)
	if err != nil {
		return err
	}
	if _, err := cohort.GenerateCohort(opts); err != nil {
		return fmt.Errorf("generating cohort: %w", err)
	}

	fmt.Println(successStyle.Render("✓ Generation complete!"))
	fmt.Printf("  Output directory: %s\n", state.OutputDir)
	return nil
}
