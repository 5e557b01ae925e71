package main

import (
	"fmt"
	"strings"

	"github.com/scott198989/securepoint-sub000/internal/config"
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/logging"
	"github.com/scott198989/securepoint-sub000/internal/output"
	"github.com/spf13/cobra"
)

// answersFile is the input of the assess command
type answersFile struct {
	PayTypes []domain.PayType `yaml:"pay_types" json:"payTypes"`
	Answers  []domain.Answer  `yaml:"answers" json:"answers"`
}

func assessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess [answers-file]",
		Short: "Assess special pay eligibility from an answers file",
		Long: `Evaluates the rules for each pay type against recorded answers and reports
eligible, potentially eligible, not eligible or needs more info per pay type.

The answers file is YAML, or JSON when it ends in .json. Without pay_types every
pay type in the rules is assessed.

  pay_types: [hfp_idp, fsa]
  answers:
    - question_id: deployed
      value: true
    - question_id: deployment_location_type
      value: combat_zone`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in answersFile
			if err := loadInput(args[0], &in); err != nil {
				return err
			}
			bundle, err := loadRules(cmd, "")
			if err != nil {
				return err
			}

			payTypes := in.PayTypes
			if only, _ := cmd.Flags().GetStringSlice("pay-types"); len(only) > 0 {
				payTypes = nil
				for _, p := range only {
					payTypes = append(payTypes, domain.PayType(strings.TrimSpace(p)))
				}
			}
			if len(payTypes) == 0 {
				payTypes = bundle.Rules.PayTypes()
			}

			engine := bundle.NewEngine()
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logger, err := logging.New("debug", "console")
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
				engine.SetLogger(logger)
			}
			result := engine.RunAssessment(payTypes, in.Answers)
			return render(cmd, output.EligibilityReport(&result))
		},
	}
	cmd.Flags().StringSlice("pay-types", nil, "Pay types to assess, overriding the file")
	return cmd
}

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rules documents",
	}

	validate := &cobra.Command{
		Use:   "validate [rules-file]",
		Short: "Validate a rules document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			bundle, err := loadRules(cmd, file)
			if err != nil {
				return err
			}
			if file == "" {
				file = "built-in rules"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d rules, %d pay types, %d wizards\n",
				file, bundle.Rules.Len(), len(bundle.Rules.PayTypes()), len(bundle.Wizards))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the pay types in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := loadRules(cmd, "")
			if err != nil {
				return err
			}
			return render(cmd, catalogReport(bundle))
		},
	}

	cmd.AddCommand(validate, list)
	return cmd
}

func catalogReport(bundle *config.RuleBundle) output.Report {
	infos := bundle.Catalog.All()
	r := output.Report{
		Title:  "Pay Type Catalog",
		Header: []string{"Pay Type", "Name", "Monthly", "Rules"},
		Value:  infos,
	}
	for _, info := range infos {
		amount := ""
		switch {
		case info.MonthlyAmount != nil:
			amount = output.FormatCurrency(*info.MonthlyAmount)
		case info.AmountRange != nil:
			amount = output.FormatCurrency(info.AmountRange.Min) + "-" + output.FormatCurrency(info.AmountRange.Max)
		}
		r.Rows = append(r.Rows, []string{
			string(info.PayType), info.Name, amount, fmt.Sprint(len(bundle.Rules.RulesFor(info.PayType))),
		})
	}
	return r
}
