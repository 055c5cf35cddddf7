package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sakif/health-planner/internal/catalog"
	"github.com/sakif/health-planner/internal/model"
	"github.com/sakif/health-planner/internal/recommend"
	"github.com/sakif/health-planner/internal/service"
)

func newMetricsCmd(opts *options) *cobra.Command {
	var (
		p      model.Profile
		seed   uint64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Compute BMI, BMR and calorie target with recommendations",
		Example: `  planner metrics --age 30 --sex male --height 175 --weight 70 \
    --activity sedentary --goal "lose weight" --diet vegan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := service.ValidateProfile(&p); err != nil {
				return err
			}
			if seed == 0 {
				seed = opts.cfg.RandomSeed
			}

			store := catalog.New(opts.cfg.FoodsPath, opts.cfg.ExercisesPath, opts.logger)
			engine := recommend.NewSeeded(store, recommend.SeedOrClock(seed))
			plan := service.NewPlannerService(nil, engine).Compute(p)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&p.Age, "age", 0, "Age in years")
	f.StringVar(&p.Sex, "sex", "", "Sex (Male or Female)")
	f.Float64Var(&p.HeightCm, "height", 0, "Height in cm")
	f.Float64Var(&p.WeightKg, "weight", 0, "Weight in kg")
	f.StringVar(&p.ActivityLevel, "activity", model.ActivitySedentary, "Activity level")
	f.StringVar(&p.Goal, "goal", model.GoalMaintain, "Goal")
	f.StringVar(&p.DietPreference, "diet", model.DietVegetarian, "Diet preference")
	f.Uint64Var(&seed, "seed", 0, "Random seed for recommendations (default from RANDOM_SEED)")
	f.BoolVar(&asJSON, "json", false, "Output as JSON")
	for _, name := range []string{"age", "sex", "height", "weight"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func printPlan(w io.Writer, plan service.Plan) {
	s := plan.Summary
	if s.BMI.Valid {
		fmt.Fprintf(w, "BMI\t%.1f (%s)\n", s.BMI.Value, s.Category)
	} else {
		fmt.Fprintf(w, "BMI\t- (%s)\n", s.Category)
	}
	fmt.Fprintf(w, "BMR\t%d kcal/day\n", s.BMR)
	fmt.Fprintf(w, "TDEE\t%d kcal/day\n", s.TDEE)
	fmt.Fprintf(w, "TARGET\t%d kcal/day\n", s.TargetCalories)

	fmt.Fprintln(w, "\nMEAL\tFOOD\tCALORIES")
	for _, m := range plan.Meals {
		if m.NoData {
			fmt.Fprintf(w, "%s\t(no data)\t\n", m.Meal)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%g\n", m.Meal, m.Name, m.Calories)
	}

	header := "\nEXERCISE\tMINUTES\tEQUIPMENT\tDIFFICULTY"
	if !plan.Exercises.Matched {
		header += "\t(no match for goal, random picks)"
	}
	fmt.Fprintln(w, header)
	for _, e := range plan.Exercises.Items {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Name, e.DurationMin, e.Equipment, e.Difficulty)
	}

	fmt.Fprintln(w, "\nFOOD\tDIET\tCALORIES")
	for _, f := range plan.Foods {
		fmt.Fprintf(w, "%s\t%s\t%g\n", f.Name, f.DietType, f.Calories)
	}
}
