package main

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pspoerri/bdmercator/internal/config"
	"github.com/pspoerri/bdmercator/internal/output"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cobra.CheckErr(NewCmd().ExecuteContext(context.Background()))
}

// app carries the resolved configuration into subcommands.
type app struct {
	cfg *config.Config
	out *output.Writer
	log *slog.Logger
}

func NewCmd() *cobra.Command {
	cobra.EnableCommandSorting = false
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "bdcoord [command] [flags] [args]",
		Short:         "bdcoord converts coordinates between Baidu BD09LL, BD09MC and screen pixels",
		Long:          "bdcoord converts coordinates between Baidu BD09LL, BD09MC and screen pixels.\n\nPass negative numbers after \"--\", e.g. bdcoord tomercator -- -73.98 40.75",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	toMercatorCmd := &cobra.Command{
		Use:   "tomercator <lng> <lat>",
		Short: "Convert BD09LL degrees to BD09MC",
		Args:  cobra.ExactArgs(2),
		RunE:  a.doToMercator,
	}

	toGeoCmd := &cobra.Command{
		Use:   "togeo <x> <y>",
		Short: "Convert BD09MC to BD09LL degrees",
		Args:  cobra.ExactArgs(2),
		RunE:  a.doToGeo,
	}

	toPixelCmd := &cobra.Command{
		Use:   "topixel <lng> <lat>",
		Short: "Locate a BD09LL point in the configured viewport",
		Args:  cobra.ExactArgs(2),
		RunE:  a.doToPixel,
	}

	toPointCmd := &cobra.Command{
		Use:   "topoint <x> <y>",
		Short: "Convert a viewport pixel to BD09LL degrees",
		Args:  cobra.ExactArgs(2),
		RunE:  a.doToPoint,
	}

	distanceCmd := &cobra.Command{
		Use:   "distance <lng1> <lat1> <lng2> <lat2>",
		Short: "Great-circle distance in whole meters",
		Args:  cobra.ExactArgs(4),
		RunE:  a.doDistance,
	}

	shiftCmd := &cobra.Command{
		Use:   "shift <lng> <lat> <east_m> <north_m>",
		Short: "Move a point by meters east and north",
		Args:  cobra.ExactArgs(4),
		RunE:  a.doShift,
	}

	tileCmd := &cobra.Command{
		Use:   "tile <lng> <lat>",
		Short: "Baidu tile containing a point at the configured zoom",
		Args:  cobra.ExactArgs(2),
		RunE:  a.doTile,
	}

	tilesCmd := &cobra.Command{
		Use:   "tiles <lng1> <lat1> <lng2> <lat2>",
		Short: "Baidu tiles covering a bounding box, in Hilbert order",
		Args:  cobra.ExactArgs(4),
		RunE:  a.doTiles,
	}

	projectCmd := &cobra.Command{
		Use:   "project [flags] <x> <y>",
		Short: "Reproject a coordinate between registered codes",
		Args:  cobra.ExactArgs(2),
		RunE:  a.doProject,
	}
	projectCmd.Flags().String("from", "BD09LL", "`<Code>` of the input coordinate")
	projectCmd.Flags().String("to", "BD09MC", "`<Code>` of the output coordinate")

	cityCmd := &cobra.Command{
		Use:   "city [name]",
		Short: "Look up a Baidu city identifier, or list all",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.doCity,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [flags] <in.geojson> <out.geojson>",
		Short: "Convert every coordinate of a GeoJSON FeatureCollection",
		Args:  cobra.ExactArgs(2),
		RunE:  a.doBatch,
	}
	batchCmd.Flags().BoolP("reverse", "r", false, "Convert BD09MC to BD09LL instead of BD09LL to BD09MC")
	batchCmd.Flags().Int("concurrency", runtime.NumCPU(), "Number of parallel workers")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE:  a.doVersion,
	}

	rootCmd.AddCommand(
		toMercatorCmd,
		toGeoCmd,
		toPixelCmd,
		toPointCmd,
		distanceCmd,
		shiftCmd,
		tileCmd,
		tilesCmd,
		projectCmd,
		cityCmd,
		batchCmd,
		versionCmd,
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.log)

	out, err := output.New(cmd.OutOrStdout(), cfg.Output)
	if err != nil {
		return err
	}
	a.cfg, a.out = cfg, out
	a.log.Debug("config loaded",
		"zoom", cfg.Zoom,
		"center", []float64{cfg.Center.Lng, cfg.Center.Lat},
		"geographic", cfg.Center.Geographic,
		"viewport", []float64{cfg.Viewport.Width, cfg.Viewport.Height},
		"output", out.Format())
	return nil
}
