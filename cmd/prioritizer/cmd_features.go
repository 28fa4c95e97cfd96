package main

import (
	"fmt"
	"strconv"

	"feature-prioritizer/internal/dto"
	"feature-prioritizer/internal/entity"
	"feature-prioritizer/pkg/prioritization"

	"github.com/spf13/cobra"
)

func newAddCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a feature",
	}

	var reach, impact, confidence, effort string
	rice := &cobra.Command{
		Use:   "rice <name>",
		Short: "Add a RICE-scored feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			draft := prioritization.RiceDraftFromStrings(args[0], reach, impact, confidence, effort)
			f, err := session.AddRice(cmd.Context(), draft)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (RICE score %s)\n", f.Header().Name,
				strconv.FormatFloat(f.(entity.RiceFeature).Score, 'f', -1, 64))
			return nil
		},
	}
	rice.Flags().StringVar(&reach, "reach", "", "Users reached per period (1-1000)")
	rice.Flags().StringVar(&impact, "impact", "", "Impact (0.25, 0.5, 1, 2 or 3)")
	rice.Flags().StringVar(&confidence, "confidence", "", "Confidence percent (50-100)")
	rice.Flags().StringVar(&effort, "effort", "", "Effort in person-months (1-50)")

	var category string
	moscow := &cobra.Command{
		Use:   "moscow <name>",
		Short: "Add a MoSCoW-categorized feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			f, err := session.AddMoscow(cmd.Context(), prioritization.MoscowDraftFromStrings(args[0], category))
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", f.Header().Name, f.(entity.MoscowFeature).Category.Label())
			return nil
		},
	}
	moscow.Flags().StringVar(&category, "category", "", "must, should, could or wont")

	cmd.AddCommand(rice, moscow)
	return cmd
}

func newListCmd(g *globalFlags) *cobra.Command {
	var search, priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List features in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := dto.ParseViewQuery(g.framework, search, priority)
			if err != nil {
				return err
			}

			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			view, err := session.View(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printView(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive name filter")
	cmd.Flags().StringVarP(&priority, "priority", "p", "all", "Priority bucket (all, high, medium, low)")
	return cmd
}

func newDeleteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a feature by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := session.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted", args[0])
			return nil
		},
	}
}

func newClearCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every feature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			session.ClearAll(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all features")
			return nil
		},
	}
}

func newSampleCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sample <rice|moscow>",
		Short: "Replace the collection with sample data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, err := dto.ParseFrameworkParam(args[0])
			if err != nil {
				return err
			}

			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := session.LoadSampleData(cmd.Context(), fw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d sample %s features\n", n, fw)
			return nil
		},
	}
}

func newTemplateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "template [key]",
		Short: "List templates, or replace the collection with one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := g.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if len(args) == 0 {
				for _, t := range session.Templates() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s (%d features)\n", t.Key, t.Name, len(t.Features))
				}
				return nil
			}

			tpl, err := session.ApplyTemplate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %s (%d features)\n", tpl.Name, len(tpl.Features))
			return nil
		},
	}
}
