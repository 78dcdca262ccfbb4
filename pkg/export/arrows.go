package export

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/graph"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// RelationshipSource is the capability export needs from a relationship
// store. *relgraph.Graph implements it.
type RelationshipSource interface {
	Relationships() []relgraph.Relationship
}

// Arrows validates positions and assetIDs and returns one arrow per
// directional relationship of g whose endpoints both have a position.
//
// positions may be any slice or array of rows, where each row is a slice or
// array of three numbers or numeric strings, or a [layout.Positions]. assetIDs
// must be a slice or array of strings parallel to the rows. An empty positions
// value paired with empty asset ids is valid and yields no arrows.
//
// The result is never nil on success.
func Arrows(g any, positions any, assetIDs any) ([]graph.Arrow, error) {
	src, ok := g.(RelationshipSource)
	if !ok || isNil(g) {
		return nil, errors.New(errors.ErrCodeTypeMismatch, "graph of type %T does not expose relationships", g)
	}
	if isNil(positions) || isNil(assetIDs) {
		return nil, errors.InvalidInput(errors.ReasonNilInput)
	}

	rows, err := coerceMatrix(positions)
	if err != nil {
		return nil, err
	}

	ids := unwrap(reflect.ValueOf(assetIDs))
	if !isSequence(ids) {
		return nil, errors.InvalidInput(errors.ReasonBadAssetIDs)
	}
	if ids.Len() != len(rows) {
		return nil, errors.InvalidInput(errors.ReasonLengthMismatch)
	}

	for _, row := range rows {
		for _, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, errors.InvalidInput(errors.ReasonNotFinite)
			}
		}
	}

	index := make(map[string]int, ids.Len())
	for i := 0; i < ids.Len(); i++ {
		v := unwrap(ids.Index(i))
		if !v.IsValid() || v.Kind() != reflect.String || strings.TrimSpace(v.String()) == "" {
			return nil, errors.InvalidInput(errors.ReasonBadAssetIDs)
		}
		if _, dup := index[v.String()]; !dup {
			index[v.String()] = i
		}
	}

	arrows := []graph.Arrow{}
	for _, r := range src.Relationships() {
		if r.Bidirectional {
			continue
		}
		si, okS := index[r.Source]
		ti, okT := index[r.Target]
		if !okS || !okT {
			continue
		}
		arrows = append(arrows, graph.Arrow{
			Source:   r.Source,
			Target:   r.Target,
			Type:     string(r.Type),
			Strength: r.Strength,
			Start:    graph.Vec3(rows[si]),
			End:      graph.Vec3(rows[ti]),
		})
	}
	return arrows, nil
}

// coerceMatrix converts positions to n rows of 3 coordinates. Coercion
// failures and ragged rows report ReasonNotNumeric; arrays of the wrong
// dimensionality or row width report ReasonBadShape.
func coerceMatrix(positions any) ([][3]float64, error) {
	if p, ok := positions.(layout.Positions); ok {
		positions = p.Coords
	}
	if p, ok := positions.(*layout.Positions); ok {
		positions = p.Coords
	}

	outer := unwrap(reflect.ValueOf(positions))
	if !isSequence(outer) {
		if _, err := toFloat(outer); err != nil {
			return nil, errors.InvalidInput(errors.ReasonNotNumeric)
		}
		return nil, errors.InvalidInput(errors.ReasonBadShape)
	}

	n := outer.Len()
	values := make([][]float64, n)
	width, nested := -1, false
	for i := 0; i < n; i++ {
		row := unwrap(outer.Index(i))
		if !isSequence(row) {
			f, err := toFloat(row)
			if err != nil {
				return nil, errors.InvalidInput(errors.ReasonNotNumeric)
			}
			values[i] = []float64{f}
			if width >= 0 {
				// Mixed scalars and rows.
				return nil, errors.InvalidInput(errors.ReasonNotNumeric)
			}
			continue
		}
		if i > 0 && width < 0 {
			return nil, errors.InvalidInput(errors.ReasonNotNumeric)
		}
		if width >= 0 && row.Len() != width {
			return nil, errors.InvalidInput(errors.ReasonNotNumeric)
		}
		width = row.Len()
		values[i] = make([]float64, width)
		for j := 0; j < width; j++ {
			cell := unwrap(row.Index(j))
			if isSequence(cell) {
				nested = true
				continue
			}
			f, err := toFloat(cell)
			if err != nil {
				return nil, errors.InvalidInput(errors.ReasonNotNumeric)
			}
			values[i][j] = f
		}
	}

	// A flat vector is one-dimensional; deeper nesting is three or more.
	if n > 0 && (width < 0 || width != 3 || nested) {
		return nil, errors.InvalidInput(errors.ReasonBadShape)
	}

	rows := make([][3]float64, n)
	for i, v := range values {
		copy(rows[i][:], v)
	}
	return rows, nil
}

// toFloat converts a scalar. cast maps nil and "" to zero and booleans to
// 0 or 1, so those are handled here. Strings may carry surrounding spaces.
func toFloat(v reflect.Value) (float64, error) {
	switch {
	case !v.IsValid(), v.Kind() == reflect.Bool:
		return 0, errors.InvalidInput(errors.ReasonNotNumeric)
	case v.Kind() == reflect.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return 0, errors.InvalidInput(errors.ReasonNotNumeric)
		}
		return strconv.ParseFloat(s, 64)
	}
	return cast.ToFloat64E(v.Interface())
}

// unwrap follows interfaces and pointers down to the concrete value.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isSequence(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

// isNil reports whether v is nil or a nil pointer, slice, map or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
