package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/line-sections/formatter"
	"github.com/theoremus-urban-solutions/line-sections/gtfsrt"
	"github.com/theoremus-urban-solutions/line-sections/utils"
)

func vehiclesCmd(opts *rootOptions) *cobra.Command {
	var (
		lineID string
		feed   string
	)
	c := &cobra.Command{
		Use:   "vehicles",
		Short: "Place realtime vehicle positions on a line",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.closer()

			if feed == "" {
				feed = a.cfg.GTFSRT.VehiclePositionsURL
			}
			if feed == "" {
				return errors.New("no vehicle positions feed: pass --feed or set gtfsrt.vehiclePositionsURL")
			}

			l, err := a.svc.Line(cmd.Context(), lineID)
			if err != nil {
				return err
			}
			stations, err := a.svc.LineStations(cmd.Context(), lineID)
			if err != nil {
				return err
			}
			f := newFetcher(gtfsrt.NewClient(utils.Millis(a.cfg.GTFSRT.TimeoutMS, 5*time.Second)))
			raw, err := f.fetch(cmd.Context(), feed)
			if err != nil {
				return err
			}
			vehicles, err := gtfsrt.DecodeVehicles(raw)
			if err != nil {
				return err
			}

			buf, err := formatter.BuildJSON(formatter.WrapVehicles(l.ID, gtfsrt.Place(vehicles, stations, l.RouteRef)))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(buf, '\n'))
			return err
		},
	}
	c.Flags().StringVar(&lineID, "line", "", "line id")
	c.Flags().StringVar(&feed, "feed", "", "vehicle positions URL or file (default: gtfsrt.vehiclePositionsURL)")
	_ = c.MarkFlagRequired("line")
	return c
}
