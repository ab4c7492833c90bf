package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pspoerri/bdmercator/internal/batch"
	"github.com/pspoerri/bdmercator/internal/coord"
	"github.com/pspoerri/bdmercator/internal/output"
)

type mercatorResult struct {
	Geo      coord.GeoPoint      `json:"bd09ll" yaml:"bd09ll"`
	Mercator coord.MercatorPoint `json:"bd09mc" yaml:"bd09mc"`
}

type pixelResult struct {
	Geo   coord.GeoPoint   `json:"bd09ll" yaml:"bd09ll"`
	Pixel coord.PixelPoint `json:"pixel" yaml:"pixel"`
	Zoom  int              `json:"zoom" yaml:"zoom"`
}

type distanceResult struct {
	From   coord.GeoPoint `json:"from" yaml:"from"`
	To     coord.GeoPoint `json:"to" yaml:"to"`
	Meters int            `json:"meters" yaml:"meters"`
}

type shiftResult struct {
	From  coord.GeoPoint `json:"from" yaml:"from"`
	East  float64        `json:"east_m" yaml:"east_m"`
	North float64        `json:"north_m" yaml:"north_m"`
	To    coord.GeoPoint `json:"to" yaml:"to"`
}

type tileResult struct {
	Zoom int                 `json:"z" yaml:"z"`
	X    int                 `json:"x" yaml:"x"`
	Y    int                 `json:"y" yaml:"y"`
	Min  coord.MercatorPoint `json:"min" yaml:"min"`
	Max  coord.MercatorPoint `json:"max" yaml:"max"`
}

type projectResult struct {
	From string     `json:"from" yaml:"from"`
	To   string     `json:"to" yaml:"to"`
	In   [2]float64 `json:"in" yaml:"in"`
	Out  [2]float64 `json:"out" yaml:"out"`
}

type batchResult struct {
	Input     string `json:"input" yaml:"input"`
	Output    string `json:"output" yaml:"output"`
	Direction string `json:"direction" yaml:"direction"`
	Features  int    `json:"features" yaml:"features"`
	Points    int    `json:"points" yaml:"points"`
}

func parseFloats(args []string) ([]float64, error) {
	vs := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(coord.ErrInvalidInput, "argument %d: %q is not a number", i+1, s)
		}
		vs[i] = v
	}
	return vs, nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (a *app) doToMercator(cmd *cobra.Command, args []string) error {
	vs, err := parseFloats(args)
	if err != nil {
		return err
	}
	p := coord.GeoPoint{Lng: vs[0], Lat: vs[1]}
	m, err := coord.GeoToMercator(p)
	if err != nil {
		return err
	}
	return a.out.Write(mercatorResult{Geo: p, Mercator: m},
		[]string{"LNG", "LAT", "X", "Y"}, []any{p.Lng, p.Lat, m.Lng, m.Lat})
}

func (a *app) doToGeo(cmd *cobra.Command, args []string) error {
	vs, err := parseFloats(args)
	if err != nil {
		return err
	}
	m := coord.MercatorPoint{Lng: vs[0], Lat: vs[1]}
	p, err := coord.MercatorToGeo(m)
	if err != nil {
		return err
	}
	return a.out.Write(mercatorResult{Geo: p, Mercator: m},
		[]string{"X", "Y", "LNG", "LAT"}, []any{m.Lng, m.Lat, p.Lng, p.Lat})
}

func (a *app) doToPixel(cmd *cobra.Command, args []string) error {
	vs, err := parseFloats(args)
	if err != nil {
		return err
	}
	center, err := a.cfg.Center.Mercator()
	if err != nil {
		return err
	}
	p := coord.GeoPoint{Lng: vs[0], Lat: vs[1]}
	px, err := coord.PointToPixel(&p, a.cfg.Zoom, center, a.cfg.Viewport)
	if err != nil {
		return err
	}
	a.log.Debug("topixel", "center", center.String(), "zoom", a.cfg.Zoom)
	return a.out.Write(pixelResult{Geo: p, Pixel: px, Zoom: a.cfg.Zoom},
		[]string{"LNG", "LAT", "PX", "PY"}, []any{p.Lng, p.Lat, px.X, px.Y})
}

func (a *app) doToPoint(cmd *cobra.Command, args []string) error {
	var px coord.PixelPoint
	var err error
	if px.X, err = strconv.Atoi(args[0]); err != nil {
		return errors.Wrapf(coord.ErrInvalidInput, "pixel x %q", args[0])
	}
	if px.Y, err = strconv.Atoi(args[1]); err != nil {
		return errors.Wrapf(coord.ErrInvalidInput, "pixel y %q", args[1])
	}
	center, err := a.cfg.Center.Mercator()
	if err != nil {
		return err
	}
	p, err := coord.PixelToPoint(&px, a.cfg.Zoom, center, a.cfg.Viewport)
	if err != nil {
		return err
	}
	return a.out.Write(pixelResult{Geo: p, Pixel: px, Zoom: a.cfg.Zoom},
		[]string{"PX", "PY", "LNG", "LAT"}, []any{px.X, px.Y, p.Lng, p.Lat})
}

func (a *app) doDistance(cmd *cobra.Command, args []string) error {
	vs, err := parseFloats(args)
	if err != nil {
		return err
	}
	from := coord.GeoPoint{Lng: vs[0], Lat: vs[1]}
	to := coord.GeoPoint{Lng: vs[2], Lat: vs[3]}
	d := coord.GreatCircleDistance(from, to)
	return a.out.Write(distanceResult{From: from, To: to, Meters: d},
		[]string{"FROM", "TO", "METERS"}, []any{from.String(), to.String(), d})
}

func (a *app) doShift(cmd *cobra.Command, args []string) error {
	vs, err := parseFloats(args)
	if err != nil {
		return err
	}
	from := coord.GeoPoint{Lng: vs[0], Lat: vs[1]}
	to := coord.ShiftPoint(from, vs[2], vs[3])
	return a.out.Write(shiftResult{From: from, East: vs[2], North: vs[3], To: to},
		[]string{"LNG", "LAT", "EAST_M", "NORTH_M", "NEW_LNG", "NEW_LAT"},
		[]any{from.Lng, from.Lat, vs[2], vs[3], to.Lng, to.Lat})
}

func (a *app) doTile(cmd *cobra.Command, args []string) error {
	vs, err := parseFloats(args)
	if err != nil {
		return err
	}
	x, y, err := coord.TileAt(coord.GeoPoint{Lng: vs[0], Lat: vs[1]}, a.cfg.Zoom)
	if err != nil {
		return err
	}
	lo, hi := coord.TileBounds(x, y, a.cfg.Zoom)
	return a.out.Write(tileResult{Zoom: a.cfg.Zoom, X: x, Y: y, Min: lo, Max: hi},
		[]string{"Z", "X", "Y", "MIN", "MAX"}, []any{a.cfg.Zoom, x, y, lo.String(), hi.String()})
}

func (a *app) doTiles(cmd *cobra.Command, args []string) error {
	vs, err := parseFloats(args)
	if err != nil {
		return err
	}
	c1, err := coord.GeoToMercator(coord.GeoPoint{Lng: vs[0], Lat: vs[1]})
	if err != nil {
		return err
	}
	c2, err := coord.GeoToMercator(coord.GeoPoint{Lng: vs[2], Lat: vs[3]})
	if err != nil {
		return err
	}
	lo := coord.MercatorPoint{Lng: min(c1.Lng, c2.Lng), Lat: min(c1.Lat, c2.Lat)}
	hi := coord.MercatorPoint{Lng: max(c1.Lng, c2.Lng), Lat: max(c1.Lat, c2.Lat)}

	tiles, err := coord.TilesInBounds(a.cfg.Zoom, lo, hi)
	if err != nil {
		return err
	}
	coord.SortTilesHilbert(tiles)
	a.log.Debug("tiles", "zoom", a.cfg.Zoom, "count", len(tiles))

	results := make([]tileResult, len(tiles))
	rows := make([][]any, len(tiles))
	for i, t := range tiles {
		tlo, thi := coord.TileBounds(t[1], t[2], t[0])
		results[i] = tileResult{Zoom: t[0], X: t[1], Y: t[2], Min: tlo, Max: thi}
		rows[i] = []any{t[0], t[1], t[2], tlo.String(), thi.String()}
	}
	return a.out.Write(results, []string{"Z", "X", "Y", "MIN", "MAX"}, rows...)
}

func (a *app) doProject(cmd *cobra.Command, args []string) error {
	vs, err := parseFloats(args)
	if err != nil {
		return err
	}
	fromCode, _ := cmd.Flags().GetString("from")
	toCode, _ := cmd.Flags().GetString("to")
	from := coord.ForCode(fromCode)
	if from == nil {
		return errors.Errorf("unknown code %q (supported: %v)", fromCode, coord.Codes())
	}
	to := coord.ForCode(toCode)
	if to == nil {
		return errors.Errorf("unknown code %q (supported: %v)", toCode, coord.Codes())
	}
	x, y := coord.Transform(from, to, vs[0], vs[1])
	if !isFinite(x) || !isFinite(y) {
		return errors.Wrapf(coord.ErrInvalidInput, "%s (%v, %v) has no %s equivalent", from.Code(), vs[0], vs[1], to.Code())
	}
	res := projectResult{From: from.Code(), To: to.Code(), In: [2]float64{vs[0], vs[1]}, Out: [2]float64{x, y}}
	return a.out.Write(res, []string{"FROM", "X", "Y", "TO", "X", "Y"},
		[]any{res.From, vs[0], vs[1], res.To, x, y})
}

func (a *app) doCity(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		id, ok := coord.CityID(args[0])
		if !ok {
			return errors.Errorf("unknown city %q", args[0])
		}
		c := coord.City{Name: args[0], ID: id}
		return a.out.Write(c, []string{"NAME", "CID"}, []any{c.Name, c.ID})
	}
	list := coord.Cities()
	rows := make([][]any, len(list))
	for i, c := range list {
		rows[i] = []any{c.Name, c.ID}
	}
	return a.out.Write(list, []string{"NAME", "CID"}, rows...)
}

func (a *app) doBatch(cmd *cobra.Command, args []string) error {
	reverse, _ := cmd.Flags().GetBool("reverse")
	workers, _ := cmd.Flags().GetInt("concurrency")
	dir := batch.ToMercator
	if reverse {
		dir = batch.ToGeo
	}
	in, out := args[0], args[1]

	fc, err := batch.ReadFile(in)
	if err != nil {
		return err
	}
	a.log.Debug("batch read", "path", in, "features", len(fc.Features))
	conv, err := batch.ConvertConcurrent(cmd.Context(), fc, dir, workers)
	if err != nil {
		return errors.Wrap(err, in)
	}
	if err := batch.WriteFile(out, conv); err != nil {
		return err
	}
	res := batchResult{
		Input:     in,
		Output:    out,
		Direction: dir.String(),
		Features:  len(conv.Features),
		Points:    batch.CountPoints(conv),
	}
	a.log.Info("batch converted", "direction", res.Direction, "features", res.Features, "points", res.Points)
	return a.out.Write(res, []string{"INPUT", "OUTPUT", "DIRECTION", "FEATURES", "POINTS"},
		[]any{res.Input, res.Output, res.Direction, res.Features, res.Points})
}

func (a *app) doVersion(cmd *cobra.Command, args []string) error {
	info := map[string]string{"version": version, "commit": commit, "build_date": buildDate}
	if a.out.Format() == output.FormatTable {
		fmt.Fprintf(cmd.OutOrStdout(), "bdcoord %s (commit %s, built %s)\n", version, commit, buildDate)
		return nil
	}
	return a.out.Write(info, nil)
}
