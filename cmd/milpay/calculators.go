package main

import (
	"fmt"
	"strconv"

	"github.com/scott198989/securepoint-sub000/internal/calculation"
	"github.com/scott198989/securepoint-sub000/internal/config"
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalFlags parses several decimal flags at once
func decimalFlags(cmd *cobra.Command, names ...string) (map[string]decimal.Decimal, error) {
	values := make(map[string]decimal.Decimal, len(names))
	for _, name := range names {
		d, err := decimalFlag(cmd, name)
		if err != nil {
			return nil, err
		}
		values[name] = d
	}
	return values, nil
}

func parseRatings(args []string) ([]int, error) {
	ratings := make([]int, 0, len(args))
	for _, a := range args {
		r, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("rating %q is not a whole number", a)
		}
		ratings = append(ratings, r)
	}
	if err := calculation.ValidateRatings(ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// taxEstimator uses the tables from --regulatory-config, or the built-in ones
func taxEstimator(cmd *cobra.Command) (*calculation.TaxEstimator, error) {
	file, _ := cmd.Flags().GetString("regulatory-config")
	tables, err := config.LoadTables(file)
	if err != nil {
		return nil, err
	}
	return calculation.NewTaxEstimatorWithTables(tables), nil
}

func vaRatingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "va-rating <rating>...",
		Short: "Combine individual VA disability ratings",
		Long: `Combines individual disability ratings with VA math (each rating applies to the
remaining efficiency, highest first) and rounds to the nearest 10.

Example:
  milpay va-rating 50 30 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratings, err := parseRatings(args)
			if err != nil {
				return err
			}
			return render(cmd, output.WorksheetReport(calculation.CombinedRatingWorksheetFor(ratings)))
		},
	}
}

func dependentsFromFlags(cmd *cobra.Command) (domain.Dependents, error) {
	spouse, _ := cmd.Flags().GetBool("spouse")
	children, _ := cmd.Flags().GetInt("children")
	school, _ := cmd.Flags().GetInt("school-children")
	aid, _ := cmd.Flags().GetBool("aid-attendance")
	d := domain.Dependents{
		HasSpouse:              spouse,
		ChildrenUnder18:        children,
		SchoolChildren:         school,
		SpouseAidAndAttendance: aid,
	}
	return d, calculation.ValidateDependents(d)
}

func addDependentFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("spouse", false, "Married")
	cmd.Flags().Int("children", 0, "Children under 18")
	cmd.Flags().Int("school-children", 0, "Children 18-23 in school")
	cmd.Flags().Bool("aid-attendance", false, "Spouse receives aid and attendance")
}

func vaCompCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "va-comp [rating]...",
		Short: "Look up monthly VA disability compensation",
		Long: `Looks up monthly VA compensation for a combined rating, or for the combination
of the individual ratings given as arguments.

Examples:
  milpay va-comp --rating 70 --spouse --children 2
  milpay va-comp 50 30 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := dependentsFromFlags(cmd)
			if err != nil {
				return err
			}
			var rating int
			switch {
			case cmd.Flags().Changed("rating"):
				rating, _ = cmd.Flags().GetInt("rating")
				if err := calculation.ValidateRatings([]int{rating}); err != nil {
					return err
				}
			case len(args) > 0:
				ratings, err := parseRatings(args)
				if err != nil {
					return err
				}
				rating = calculation.CombineRatings(ratings)
			default:
				return fmt.Errorf("give --rating or one or more individual ratings")
			}
			return render(cmd, output.CompensationReport(calculation.CalculateVACompensation(rating, deps)))
		},
	}
	cmd.Flags().Int("rating", 0, "Combined rating (0-100)")
	addDependentFlags(cmd)
	return cmd
}

func retirementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retirement",
		Short: "Estimate monthly military retired pay",
		Example: `  milpay retirement --system high_3 --years 20 --high-three 5400
  milpay retirement --system brs --years 24.5 --high-three 6100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			system, _ := cmd.Flags().GetString("system")
			values, err := decimalFlags(cmd, "years", "high-three")
			if err != nil {
				return err
			}
			in := domain.RetirementInput{
				System:           domain.RetirementSystem(system),
				YearsOfService:   values["years"],
				HighThreeBasePay: values["high-three"],
			}
			if err := calculation.ValidateRetirementInput(in); err != nil {
				return err
			}
			return render(cmd, output.RetirementReport(calculation.CalculateRetirementPay(in)))
		},
	}
	cmd.Flags().String("system", string(domain.RetirementHigh3), "Retirement system: high_3, final_pay or brs")
	cmd.Flags().String("years", "", "Years of service")
	cmd.Flags().String("high-three", "", "Average of the highest 36 months of base pay")
	return cmd
}

func concurrentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concurrent",
		Short: "Compare CRDP and CRSC concurrent receipt",
		Long: `Resolves Concurrent Retirement and Disability Pay and Combat-Related Special
Compensation for a retiree and recommends the election that pays more.
When --va-comp is omitted it is looked up from --rating with no dependents.`,
		Example: `  milpay concurrent --rating 70 --combat-rating 40 --retired-pay 2800`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, _ := cmd.Flags().GetInt("rating")
			combat, _ := cmd.Flags().GetInt("combat-rating")
			values, err := decimalFlags(cmd, "retired-pay", "va-comp", "combat-va-comp")
			if err != nil {
				return err
			}
			in := domain.ConcurrentReceiptInput{
				CombinedRating:              rating,
				CombatRelatedRating:         combat,
				RetirementPay:               values["retired-pay"],
				VACompensation:              values["va-comp"],
				CombatRelatedVACompensation: values["combat-va-comp"],
			}
			if err := calculation.ValidateConcurrentInput(in); err != nil {
				return err
			}
			if !cmd.Flags().Changed("va-comp") {
				in.VACompensation = calculation.CalculateVACompensation(rating, domain.Dependents{}).Monthly
			}
			if !cmd.Flags().Changed("combat-va-comp") {
				in.CombatRelatedVACompensation = calculation.CalculateVACompensation(combat, domain.Dependents{}).Monthly
			}
			return render(cmd, output.ConcurrentReport(calculation.ResolveConcurrentReceipt(in)))
		},
	}
	cmd.Flags().Int("rating", 0, "Combined VA rating")
	cmd.Flags().Int("combat-rating", 0, "Combat-related portion of the rating")
	cmd.Flags().String("retired-pay", "", "Monthly retired pay")
	cmd.Flags().String("va-comp", "", "Monthly VA compensation")
	cmd.Flags().String("combat-va-comp", "", "Monthly VA compensation for the combat-related rating")
	return cmd
}

func separationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "separation",
		Short:   "Estimate involuntary separation pay",
		Example: `  milpay separation --years 8 --base-pay 4200 --type full`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payType, _ := cmd.Flags().GetString("type")
			values, err := decimalFlags(cmd, "years", "base-pay")
			if err != nil {
				return err
			}
			in := domain.SeparationPayInput{
				YearsOfService: values["years"],
				MonthlyBasePay: values["base-pay"],
				Type:           domain.SeparationPayType(payType),
			}
			if err := calculation.ValidateSeparationInput(in); err != nil {
				return err
			}
			return render(cmd, output.SeparationReport(calculation.CalculateSeparationPay(in)))
		},
	}
	cmd.Flags().String("years", "", "Years of active service")
	cmd.Flags().String("base-pay", "", "Monthly base pay at separation")
	cmd.Flags().String("type", string(domain.SeparationFull), "Separation pay type: full or half")
	return cmd
}

func leaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leave",
		Short:   "Estimate leave sellback and terminal leave",
		Example: `  milpay leave --days 60 --balance 75 --base-pay 4500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := decimalFlags(cmd, "days", "balance", "base-pay")
			if err != nil {
				return err
			}
			in := domain.LeaveSellbackInput{
				RequestedDays:  values["days"],
				CurrentBalance: values["balance"],
				MonthlyBasePay: values["base-pay"],
			}
			if err := calculation.ValidateLeaveInput(in); err != nil {
				return err
			}
			return render(cmd, output.LeaveReport(calculation.CalculateLeaveSellback(in)))
		},
	}
	cmd.Flags().String("days", "", "Days of leave to sell")
	cmd.Flags().String("balance", "", "Current leave balance in days")
	cmd.Flags().String("base-pay", "", "Monthly base pay")
	return cmd
}

func addTaxFlags(cmd *cobra.Command) {
	cmd.Flags().Int("year", 0, "Tax year; 0 uses the latest year with tables")
	cmd.Flags().String("filing-status", string(domain.FilingSingle),
		"single, married_filing_jointly, married_filing_separately or head_of_household")
	cmd.Flags().String("state", "", "Two-letter state of legal residence")
	cmd.Flags().String("special-pay", "", "Monthly taxable special and incentive pay")
	cmd.Flags().String("bonus", "", "Monthly bonus")
	cmd.Flags().String("combat-pay", "", "Monthly pay earned in a combat zone")
	cmd.Flags().Bool("combat-zone", false, "Serving in a combat zone tax exclusion area")
}

func taxesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxes",
		Short: "Estimate federal, state and FICA taxes on military pay",
		Example: `  milpay taxes --base-pay 4200 --state VA --filing-status married_filing_jointly
  milpay taxes --base-pay 4200 --combat-pay 4200 --combat-zone`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			status, _ := cmd.Flags().GetString("filing-status")
			state, _ := cmd.Flags().GetString("state")
			combatZone, _ := cmd.Flags().GetBool("combat-zone")
			values, err := decimalFlags(cmd, "base-pay", "special-pay", "bonus", "combat-pay")
			if err != nil {
				return err
			}
			in := domain.TaxInput{
				Year:                     year,
				FilingStatus:             domain.FilingStatus(status),
				State:                    state,
				MonthlyBasePay:           values["base-pay"],
				MonthlyTaxableSpecialPay: values["special-pay"],
				MonthlyBonus:             values["bonus"],
				MonthlyCombatPay:         values["combat-pay"],
				InCombatZone:             combatZone,
			}
			if err := calculation.ValidateTaxInput(in); err != nil {
				return err
			}
			te, err := taxEstimator(cmd)
			if err != nil {
				return err
			}
			res, err := te.EstimateTaxes(in)
			if err != nil {
				return err
			}
			return render(cmd, output.TaxReport(&res))
		},
	}
	cmd.Flags().String("base-pay", "", "Monthly base pay")
	addTaxFlags(cmd)
	return cmd
}

func payCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Estimate monthly pay, allowances and take-home pay",
		Example: `  milpay pay --grade E-5 --years 6 --locality VA298 --dependents --state VA
  milpay pay --grade O-3 --years 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grade, _ := cmd.Flags().GetString("grade")
			years, _ := cmd.Flags().GetInt("years")
			locality, _ := cmd.Flags().GetString("locality")
			dependents, _ := cmd.Flags().GetBool("dependents")
			year, _ := cmd.Flags().GetInt("year")
			status, _ := cmd.Flags().GetString("filing-status")
			state, _ := cmd.Flags().GetString("state")
			combatZone, _ := cmd.Flags().GetBool("combat-zone")
			values, err := decimalFlags(cmd, "special-pay", "bonus", "combat-pay")
			if err != nil {
				return err
			}
			in := domain.PayInput{
				Year:                     year,
				PayGrade:                 grade,
				YearsOfService:           years,
				LocalityCode:             locality,
				HasDependents:            dependents,
				MonthlyTaxableSpecialPay: values["special-pay"],
				MonthlyBonus:             values["bonus"],
				MonthlyCombatPay:         values["combat-pay"],
				InCombatZone:             combatZone,
				FilingStatus:             domain.FilingStatus(status),
				State:                    state,
			}
			if err := calculation.ValidatePayInput(in); err != nil {
				return err
			}
			te, err := taxEstimator(cmd)
			if err != nil {
				return err
			}
			est, err := te.EstimatePay(in)
			if err != nil {
				return err
			}
			return render(cmd, output.PayReport(&est))
		},
	}
	cmd.Flags().String("grade", "", "Pay grade, e.g. E-5, W-2, O-3")
	cmd.Flags().Int("years", 0, "Years of service")
	cmd.Flags().String("locality", "", "BAH military housing area code")
	cmd.Flags().Bool("dependents", false, "Draw BAH at the with-dependents rate")
	addTaxFlags(cmd)
	return cmd
}

func transitionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transition [input-file]",
		Short: "Project income after leaving service",
		Long: `Combines retired pay, VA compensation (after concurrent receipt) and a civilian
salary, and estimates the taxes on the taxable part.

The input file is YAML, or JSON when it ends in .json:

  year: 2025
  retirement:
    system: high_3
    years_of_service: 20
    high_three_base_pay: 5400
  ratings: [50, 30]
  combat_related_ratings: [30]
  dependents:
    has_spouse: true
  civilian_annual_salary: 85000
  filing_status: married_filing_jointly
  state: TX`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in domain.TransitionInput
			if err := loadInput(args[0], &in); err != nil {
				return err
			}
			if err := calculation.ValidateTransitionInput(in); err != nil {
				return err
			}
			te, err := taxEstimator(cmd)
			if err != nil {
				return err
			}
			p, err := te.ProjectTransition(in)
			if err != nil {
				return err
			}
			return render(cmd, output.TransitionReport(&p))
		},
	}
}
