package main

import (
	"strconv"

	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/dto"
	"github.com/spf13/cobra"
)

func locationFlag(location int) (*domain.Location, error) {
	if location == 0 {
		return nil, nil
	}
	return dto.ParseLocationParam(strconv.Itoa(location))
}

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print daily or monthly summaries",
	}
	cmd.AddCommand(summaryDailyCmd(), summaryMonthlyCmd())
	return cmd
}

func summaryDailyCmd() *cobra.Command {
	var date string
	var location int
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Summary of one day, per location and combined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dto.ParseDateOrToday(date)
			if err != nil {
				return err
			}
			loc, err := locationFlag(location)
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				report, err := svc.Reporting.DailySummary(cmd.Context(), d, loc, "")
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.ToDailySummaryResponse(report))
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "day, defaults to today")
	cmd.Flags().IntVarP(&location, "location", "l", 0, "restrict to one location")
	return cmd
}

func summaryMonthlyCmd() *cobra.Command {
	var month string
	var location int
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Summary of one month with a per-day breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseMonth(month)
			if err != nil {
				return err
			}
			loc, err := locationFlag(location)
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				report, err := svc.Reporting.MonthlySummary(cmd.Context(), m, loc, "")
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.ToMonthlySummaryResponse(report))
			})
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM")
	cmd.Flags().IntVarP(&location, "location", "l", 0, "restrict to one location")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List unpaid postings, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				postings, err := svc.Pending.ListPending(cmd.Context(), "")
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.ToPendingResponse(postings))
			})
		},
	}
}
