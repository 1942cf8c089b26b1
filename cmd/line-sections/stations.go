package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func stationsCmd(opts *rootOptions) *cobra.Command {
	var lineID string
	c := &cobra.Command{
		Use:   "stations",
		Short: "Print a line's stations from start to end, or every station",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.closer()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			if lineID == "" {
				stations, err := a.svc.Stations(cmd.Context())
				if err != nil {
					return err
				}
				for _, st := range stations {
					fmt.Fprintf(w, "%s\t%s\t%s\n", st.ID, st.Code, st.Name)
				}
				return nil
			}

			stations, err := a.svc.LineStations(cmd.Context(), lineID)
			if err != nil {
				return err
			}
			for i, st := range stations {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, st.ID, st.Code, st.Name)
			}
			return nil
		},
	}
	c.Flags().StringVar(&lineID, "line", "", "line id")
	return c
}
