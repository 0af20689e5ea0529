package main

import (
	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/dto"
	"github.com/spf13/cobra"
)

func closeCmd() *cobra.Command {
	var date, operator, notes string
	var location int
	cmd := &cobra.Command{
		Use:     "close",
		Short:   "Close a day at one location and print the closing report",
		Example: `  ledgerctl close --date 2024-03-12 --location 1 --operator Ana`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dto.ParseDateOrToday(date)
			if err != nil {
				return err
			}
			loc, err := domain.ParseLocation(location)
			if err != nil {
				return err
			}
			req := domain.CloseDayRequest{Date: d, Location: loc, Operator: operator, Notes: notes}

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				report, err := svc.Closing.CloseDay(cmd.Context(), req, "")
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.ToClosingReportResponse(report))
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to close, defaults to today")
	cmd.Flags().IntVarP(&location, "location", "l", 0, "1 (Shopping Bolivia) or 2 (Hotel Family)")
	cmd.Flags().StringVarP(&operator, "operator", "o", "", "name of the operator closing the day")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}
