// Package batch converts whole GeoJSON documents between BD09LL and BD09MC.
package batch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
	"github.com/pkg/errors"

	"github.com/pspoerri/bdmercator/internal/coord"
)

// Direction selects which way coordinates are converted.
type Direction int

const (
	// ToMercator converts BD09LL longitude/latitude into BD09MC.
	ToMercator Direction = iota
	// ToGeo converts BD09MC into BD09LL longitude/latitude.
	ToGeo
)

// CRSProperty is the feature property that records the output CRS.
const CRSProperty = "crs"

func (d Direction) String() string {
	switch d {
	case ToMercator:
		return "tomercator"
	case ToGeo:
		return "togeo"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Target returns the code of the CRS produced by d.
func (d Direction) Target() string {
	if d == ToGeo {
		return coord.CodeBD09LL
	}
	return coord.CodeBD09MC
}

// ParseDirection parses "tomercator"/"bd09mc" or "togeo"/"bd09ll".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tomercator", "mercator", "bd09mc":
		return ToMercator, nil
	case "togeo", "geo", "bd09ll":
		return ToGeo, nil
	default:
		return 0, errors.Wrapf(coord.ErrInvalidInput, "unknown direction %q (supported: tomercator, togeo)", s)
	}
}

// Convert returns a copy of fc with every coordinate of every feature
// geometry converted in direction d. Properties and foreign members are
// copied, bounding boxes that were present are recomputed, and the output
// CRS is recorded under CRSProperty. The input is left untouched.
func Convert(fc *geojson.FeatureCollection, d Direction) (*geojson.FeatureCollection, error) {
	return ConvertConcurrent(context.Background(), fc, d, 1)
}

// ConvertConcurrent is Convert with features spread over workers
// goroutines. Feature order is preserved, and when several features fail
// the error names the lowest feature index.
func ConvertConcurrent(ctx context.Context, fc *geojson.FeatureCollection, d Direction, workers int) (*geojson.FeatureCollection, error) {
	if fc == nil {
		return nil, errors.Wrap(coord.ErrInvalidInput, "nil feature collection")
	}
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, max(len(fc.Features), 1))

	features := make([]*geojson.Feature, len(fc.Features))
	errs := make([]error, len(fc.Features))
	var failed atomic.Bool

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				features[i], errs[i] = convertFeature(fc.Features[i], d)
				if errs[i] != nil {
					failed.Store(true)
				}
			}
		}()
	}

	var ctxErr error
feed:
	for i := range fc.Features {
		if failed.Load() {
			break
		}
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
	}
	if ctxErr != nil {
		return nil, errors.Wrap(ctxErr, "batch conversion")
	}

	out := geojson.NewFeatureCollection()
	out.Features = features
	if fc.ExtraMembers != nil {
		out.ExtraMembers = fc.ExtraMembers.Clone()
	}
	if fc.BBox != nil {
		var b orb.Bound
		seen := false
		for _, f := range features {
			if f.Geometry == nil {
				continue
			}
			if !seen {
				b, seen = f.Geometry.Bound(), true
				continue
			}
			b = b.Union(f.Geometry.Bound())
		}
		if seen {
			out.BBox = geojson.NewBBox(b)
		}
	}
	return out, nil
}

func convertFeature(f *geojson.Feature, d Direction) (*geojson.Feature, error) {
	if f == nil {
		return nil, errors.Wrap(coord.ErrInvalidInput, "null feature")
	}
	g, err := ConvertGeometry(f.Geometry, d)
	if err != nil {
		return nil, err
	}
	nf := geojson.NewFeature(g)
	nf.ID = f.ID
	for k, v := range f.Properties {
		nf.Properties[k] = v
	}
	nf.Properties[CRSProperty] = d.Target()
	if f.ExtraMembers != nil {
		nf.ExtraMembers = f.ExtraMembers.Clone()
	}
	if f.BBox != nil && g != nil {
		nf.BBox = geojson.NewBBox(g.Bound())
	}
	return nf, nil
}

// ConvertGeometry converts a copy of g. A nil geometry stays nil.
func ConvertGeometry(g orb.Geometry, d Direction) (orb.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	var (
		firstErr error
		convert  func(orb.Point) (orb.Point, error)
	)
	switch d {
	case ToMercator:
		convert = func(p orb.Point) (orb.Point, error) {
			m, err := coord.GeoToMercator(coord.GeoPointFromOrb(p))
			return m.Orb(), err
		}
	case ToGeo:
		convert = func(p orb.Point) (orb.Point, error) {
			ll, err := coord.MercatorToGeo(coord.MercatorPointFromOrb(p))
			return ll.Orb(), err
		}
	default:
		return nil, errors.Wrapf(coord.ErrInvalidInput, "direction %v", d)
	}

	out := project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		if firstErr != nil {
			return p
		}
		q, err := convert(p)
		if err != nil {
			firstErr = errors.Wrapf(err, "point %v", p)
			return p
		}
		return q
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// CountPoints returns the number of coordinates in the collection.
func CountPoints(fc *geojson.FeatureCollection) int {
	n := 0
	for _, f := range fc.Features {
		if f != nil {
			n += len(points(f.Geometry))
		}
	}
	return n
}

func points(g orb.Geometry) []orb.Point {
	if g == nil {
		return nil
	}
	var pts []orb.Point
	project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		pts = append(pts, p)
		return p
	})
	return pts
}

// ReadFile loads a GeoJSON FeatureCollection.
func ReadFile(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading geojson")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return fc, nil
}

// WriteFile stores fc as GeoJSON.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing geojson")
	}
	return nil
}
