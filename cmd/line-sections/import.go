package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/line-sections/gtfs"
	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/osmroute"
)

func importCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "import",
		Short: "Create a line from an external source",
	}
	c.AddCommand(importGTFSCmd(opts), importOSMCmd(opts))
	return c
}

type importFlags struct {
	name   string
	dryRun bool
}

func (f *importFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.name, "name", "", "line name (default: derived from the source)")
	c.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the plan as JSON instead of saving it")
}

func (f *importFlags) apply(cmd *cobra.Command, a *app, plan line.Plan) error {
	if f.name != "" {
		plan.Name = f.name
	}
	if f.dryRun {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	l, err := a.svc.ImportPlan(cmd.Context(), plan)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d stations\t%d m\n",
		l.ID, l.Name, len(l.StationIDs()), l.Sections.TotalDistance().Int())
	return nil
}

func importGTFSCmd(opts *rootOptions) *cobra.Command {
	var (
		src       string
		routeID   string
		direction string
		agency    string
		cachePath string
		flags     importFlags
	)
	c := &cobra.Command{
		Use:   "gtfs",
		Short: "Import one direction of a GTFS route",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.closer()

			if src == "" {
				src = a.cfg.GTFS.StaticURL
			}
			if agency == "" {
				agency = a.cfg.GTFS.AgencyID
			}
			feed, err := loadFeed(cmd, src, agency, cachePath)
			if err != nil {
				return err
			}
			plan, err := feed.RouteLine(routeID, direction, gtfs.Unit(a.cfg.GTFS.ShapeDistUnit))
			if err != nil {
				return err
			}
			return flags.apply(cmd, a, plan)
		},
	}
	c.Flags().StringVar(&src, "zip", "", "GTFS zip path or URL (default: gtfs.staticURL)")
	c.Flags().StringVar(&routeID, "route", "", "route_id to import")
	c.Flags().StringVar(&direction, "direction", "", "direction_id (0 or 1; empty accepts any)")
	c.Flags().StringVar(&agency, "agency", "", "agency id (default: gtfs.agency_id)")
	c.Flags().StringVar(&cachePath, "cache", "", "gob cache of the parsed feed, reused when present")
	_ = c.MarkFlagRequired("route")
	flags.register(c)
	return c
}

func loadFeed(cmd *cobra.Command, src, agency, cachePath string) (*gtfs.Feed, error) {
	if cachePath != "" {
		if feed, err := gtfs.LoadFeed(cachePath); err == nil {
			feed.AgencyID = agency
			return feed, nil
		}
	}
	if src == "" {
		return nil, errors.New("no GTFS source: pass --zip or set gtfs.staticURL")
	}
	feed, err := gtfs.Load(cmd.Context(), src, agency)
	if err != nil {
		return nil, err
	}
	if cachePath != "" {
		if err := gtfs.SaveFeed(feed, cachePath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}
	return feed, nil
}

func importOSMCmd(opts *rootOptions) *cobra.Command {
	var (
		pbf   string
		q     osmroute.Query
		flags importFlags
	)
	c := &cobra.Command{
		Use:   "osm",
		Short: "Import an OpenStreetMap route relation from an .osm.pbf extract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if q.RelationID == 0 && q.Ref == "" {
				return errors.New("one of --relation or --ref is required")
			}
			if _, err := os.Stat(pbf); err != nil {
				return err
			}
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.closer()

			plan, err := osmroute.ImportFile(cmd.Context(), pbf, q)
			if err != nil {
				return err
			}
			return flags.apply(cmd, a, plan)
		},
	}
	c.Flags().StringVar(&pbf, "pbf", "", "path to the .osm.pbf extract")
	c.Flags().Int64Var(&q.RelationID, "relation", 0, "route relation id")
	c.Flags().StringVar(&q.Ref, "ref", "", "route ref tag")
	_ = c.MarkFlagRequired("pbf")
	flags.register(c)
	return c
}
