package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/goccy/go-json"
	"github.com/scott198989/securepoint-sub000/internal/config"
	"github.com/scott198989/securepoint-sub000/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "milpay",
		Short: "Military pay eligibility and benefits calculator",
		Long: `Checks eligibility for special and incentive pays from questionnaire answers,
and estimates VA compensation, retired pay, separation pay, leave sellback and taxes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("format", "f", "console",
		"Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	root.PersistentFlags().String("rules", "", "Rules document (YAML or JSON); defaults to the built-in rules")
	root.PersistentFlags().String("regulatory-config", "", "Regulatory override file for tax tables")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(
		assessCmd(),
		rulesCmd(),
		vaRatingCmd(),
		vaCompCmd(),
		retirementCmd(),
		concurrentCmd(),
		separationCmd(),
		leaveCmd(),
		taxesCmd(),
		payCmd(),
		transitionCmd(),
		wizardCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "milpay %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// render writes the report in the format chosen with --format
func render(cmd *cobra.Command, r output.Report) error {
	format, _ := cmd.Flags().GetString("format")
	return output.Write(cmd.OutOrStdout(), format, r)
}

// loadRules returns the rules named by --rules, or the built-in rules
func loadRules(cmd *cobra.Command, fallback string) (*config.RuleBundle, error) {
	file, _ := cmd.Flags().GetString("rules")
	if file == "" {
		file = fallback
	}
	parser := config.NewRulesParser()
	if file == "" {
		return parser.LoadDefault()
	}
	return parser.LoadFromFile(file)
}

// loadInput decodes a calculator input file. .json files use the JSON field names,
// everything else is read as YAML.
func loadInput(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}
	return nil
}

// decimalFlag parses a money or years flag; an empty value is zero
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return d, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
