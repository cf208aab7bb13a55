package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewVenuesCmd creates the venues command
func NewVenuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "List bookable venues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVenues()
		},
	}
}

func runVenues() error {
	apiClient, serverURL, err := newClient()
	if err != nil {
		return err
	}

	venues, err := apiClient.ListVenues(context.Background())
	if err != nil {
		return err
	}

	if len(venues) == 0 {
		fmt.Println("No venues found.")
		return nil
	}

	fmt.Printf("Venues on %s:\n\n", serverURL)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPORT\tADDRESS\tRATE/HR\tCAPACITY")
	fmt.Fprintln(w, "────\t─────\t───────\t───────\t────────")

	for _, v := range venues {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\n",
			v.Name,
			v.Sport,
			v.Address,
			v.HourlyRate,
			v.Capacity,
		)
	}

	w.Flush()

	return nil
}
