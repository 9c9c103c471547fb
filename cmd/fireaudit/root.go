package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/DukeRupert/fireaudit/internal/compliance"
	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fireaudit",
		Short:         "Fire safety inspection scoring and scheduling tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newScoreCmd(), newFloorsCmd(), newNextDateCmd(), newStatusCmd())
	return root
}

// =============================================================================
// score
// =============================================================================

type scoreOutput struct {
	Score         int                     `json:"score"`
	CriticalCount int                     `json:"critical_count"`
	Status        domain.InspectionStatus `json:"status"`
	ResultLine    string                  `json:"result_line"`
	Narrative     string                  `json:"narrative,omitempty"`
	Problems      map[string]string       `json:"problems,omitempty"`
}

func newScoreCmd() *cobra.Command {
	var (
		summary        bool
		validate       bool
		failOnCritical bool
	)

	cmd := &cobra.Command{
		Use:   "score <findings.json|->",
		Short: "Score a findings record",
		Long: "Score a findings record read from a file, or from stdin when the path is '-'.\n" +
			"With --fail-on-critical the command exits with status 2 when any critical issue is found.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			findings, err := readFindings(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			result := compliance.Compute(findings)
			out := scoreOutput{
				Score:         result.Score,
				CriticalCount: result.CriticalCount,
				Status:        result.Status(),
				ResultLine:    compliance.ResultLine(result),
			}
			if summary {
				out.Narrative = compliance.Summary(findings)
			}
			if validate {
				if err := compliance.ValidateSubmission(findings); err != nil {
					var ve *domain.ValidationError
					if !errors.As(err, &ve) {
						return err
					}
					out.Problems = ve.Fields
				}
			}

			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}

			if failOnCritical && result.CriticalCount > 0 {
				return &exitError{code: 2, msg: fmt.Sprintf("%d critical issues", result.CriticalCount)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "include the compliance narrative")
	cmd.Flags().BoolVar(&validate, "validate", false, "report why the record could not be submitted")
	cmd.Flags().BoolVar(&failOnCritical, "fail-on-critical", false, "exit with status 2 when critical issues are found")
	return cmd
}

func readFindings(stdin io.Reader, path string) (domain.Findings, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return domain.Findings{}, fmt.Errorf("open findings: %w", err)
		}
		defer f.Close()
		r = f
	}

	var findings domain.Findings
	if err := json.NewDecoder(r).Decode(&findings); err != nil {
		return domain.Findings{}, fmt.Errorf("decode findings: %w", err)
	}
	return findings, nil
}

// =============================================================================
// floors
// =============================================================================

func newFloorsCmd() *cobra.Command {
	var basements, podiums, floors int

	cmd := &cobra.Command{
		Use:   "floors",
		Short: "Print the floor labels generated for a building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if basements < 0 || podiums < 0 || floors < 0 {
				return fmt.Errorf("counts must not be negative")
			}
			for _, label := range compliance.FloorLabels(basements, podiums, floors) {
				fmt.Fprintln(cmd.OutOrStdout(), label)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&basements, "basements", 0, "number of basement levels")
	cmd.Flags().IntVar(&podiums, "podiums", 0, "number of podium levels")
	cmd.Flags().IntVar(&floors, "floors", 0, "number of residential floors")
	return cmd
}

// =============================================================================
// next-date
// =============================================================================

func newNextDateCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "next-date",
		Short: "Print the next inspection due date for a submission date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			submitted, err := parseDateOrToday(from)
			if err != nil {
				return err
			}
			next := schedule.NextInspectionDate(submitted)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", next.Format(time.DateOnly), next.Weekday())
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "submission date, YYYY-MM-DD (default today)")
	return cmd
}

// =============================================================================
// status
// =============================================================================

func newStatusCmd() *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "status <due-date>",
		Short: "Classify a due date as None, Upcoming, Due Today, Pending or Urgent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := parseDate(args[0])
			if err != nil {
				return err
			}
			now, err := parseDateOrToday(today)
			if err != nil {
				return err
			}

			status := schedule.StatusOf(&due, now)
			days := schedule.DaysBetween(now, due)
			switch {
			case days > 0:
				fmt.Fprintf(cmd.OutOrStdout(), "%s (due in %d days)\n", status, days)
			case days < 0:
				fmt.Fprintf(cmd.OutOrStdout(), "%s (overdue by %d days)\n", status, -days)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "reference date, YYYY-MM-DD (default today)")
	return cmd
}

// =============================================================================
// Helpers
// =============================================================================

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be formatted YYYY-MM-DD", s)
	}
	return t, nil
}

func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		y, m, d := time.Now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return parseDate(s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
