package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/health-planner/internal/catalog"
)

func newCatalogCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the food and exercise catalogs",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := catalog.SeedDefaults(opts.cfg.FoodsPath, opts.cfg.ExercisesPath, force)
			if errors.Is(err, catalog.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nWrote %s\n", opts.cfg.FoodsPath, opts.cfg.ExercisesPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite existing catalog files")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print both catalogs as loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			store := catalog.New(opts.cfg.FoodsPath, opts.cfg.ExercisesPath, opts.logger)

			fmt.Fprintln(w, "FOOD\tDIET\tCALORIES\tMEAL")
			for _, f := range store.Foods() {
				fmt.Fprintf(w, "%s\t%s\t%g\t%s\n", f.Name, f.DietType, f.Calories, f.MealType)
			}
			fmt.Fprintln(w, "\nEXERCISE\tGOALS\tMINUTES\tEQUIPMENT\tDIFFICULTY")
			for _, e := range store.Exercises() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", e.Name, e.Goals, e.DurationMin, e.Equipment, e.Difficulty)
			}
			return nil
		},
	}

	cmd.AddCommand(initCmd, listCmd)
	return cmd
}
