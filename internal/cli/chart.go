package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"saju-api/internal/almanac"
	"saju-api/internal/domain"
	"saju-api/internal/service"
)

func chartCmd(flags *almanacFlags) *cobra.Command {
	var date, clock string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Resolve the four pillars and element balance of a moment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := parseMoment(date, clock)
			if err != nil {
				return err
			}
			svc, err := flags.chartService()
			if err != nil {
				return err
			}
			report, err := svc.Chart(context.Background(), m)
			if err != nil {
				return err
			}
			printChart(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "civil date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&clock, "time", "t", "00:00", "civil time, HH:MM")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func compatCmd(flags *almanacFlags) *cobra.Command {
	var a, b string

	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Score the compatibility of two moments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ma, err := parseMomentArg(a)
			if err != nil {
				return err
			}
			mb, err := parseMomentArg(b)
			if err != nil {
				return err
			}
			svc, err := flags.chartService()
			if err != nil {
				return err
			}
			report, err := svc.Compatibility(context.Background(), ma, mb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printChart(out, report.A)
			printChart(out, report.B)
			r := report.Result
			fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Compatibility %d/100", r.Score)))
			fmt.Fprintf(out, "%s (%s / %s)\n", r.Relationship, r.DayMasterA, r.DayMasterB)
			fmt.Fprintln(out, faintStyle.Render(r.Description))
			return nil
		},
	}

	cmd.Flags().StringVar(&a, "a", "", "first moment, \"YYYY-MM-DD HH:MM\"")
	cmd.Flags().StringVar(&b, "b", "", "second moment, \"YYYY-MM-DD HH:MM\"")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func termTableCmd() *cobra.Command {
	var from, to int
	var out string

	cmd := &cobra.Command{
		Use:   "termtable",
		Short: "Export a precomputed solar-term table for ALMANAC_TABLE_PATH",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := almanac.BuildTermTable(from, to)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := table.WriteYAML(w); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d-%d to %s\n", from, to, out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", service.MinYear-1, "first year")
	cmd.Flags().IntVar(&to, "to", service.MaxYear, "last year")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	return cmd
}

func hashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret <secret>",
		Short: "Print the bcrypt hash of a client secret for API_CLIENTS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := service.HashSecret(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func printChart(w io.Writer, report service.ChartReport) {
	p := report.Pillars
	fmt.Fprintln(w, titleStyle.Render(report.Moment.Key()))
	fmt.Fprintf(w, "  %-6s %-6s %-6s %-6s\n", "hour", "day", "month", "year")
	fmt.Fprintf(w, "  %-6s %-6s %-6s %-6s\n", p.Hour, p.Day, p.Month, p.Year)
	fmt.Fprintf(w, "  %-6s %-6s %-6s %-6s\n", p.Hour.Hangul(), p.Day.Hangul(), p.Month.Hangul(), p.Year.Hangul())

	a := report.Analysis
	for _, e := range domain.Elements {
		fmt.Fprintf(w, "  %-5s %3d%%  (%d)\n", e, a.Balance.Of(e), a.Counts.Of(e))
	}
	fmt.Fprintln(w, faintStyle.Render(fmt.Sprintf(
		"  day master %s, dominant %s, weakest %s, yang %d%% / yin %d%%",
		a.DayMaster, a.Dominant, a.Weakest, a.YinYang.Yang, a.YinYang.Yin,
	)))
}
