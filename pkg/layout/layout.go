package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// Vec is a point in 3-D space.
type Vec = [3]float64

// Positions maps asset ids to coordinates. IDs and Coords are parallel.
type Positions struct {
	IDs    []string
	Coords []Vec
	Seed   uint64

	index map[string]int
}

// Len returns the number of positioned assets.
func (p Positions) Len() int { return len(p.IDs) }

// Lookup returns the coordinates of id.
func (p Positions) Lookup(id string) (Vec, bool) {
	if p.index != nil {
		i, ok := p.index[id]
		if !ok {
			return Vec{}, false
		}
		return p.Coords[i], true
	}
	for i, v := range p.IDs {
		if v == id {
			return p.Coords[i], true
		}
	}
	return Vec{}, false
}

// Rows returns the coordinates as an n×3 matrix.
func (p Positions) Rows() [][]float64 {
	rows := make([][]float64, len(p.Coords))
	for i, c := range p.Coords {
		rows[i] = []float64{c[0], c[1], c[2]}
	}
	return rows
}

// Compute lays out ids in 3-D. Relationships whose endpoints are not both in
// ids are ignored; a bidirectional relationship may be passed once or as
// both stored halves. Zero option fields take their defaults.
func Compute(ids []string, rels []relgraph.Relationship, opts Options) Positions {
	opts.SetDefaults()

	n := len(ids)
	pos := Positions{
		IDs:    append([]string(nil), ids...),
		Coords: make([]Vec, n),
		Seed:   opts.Seed,
		index:  make(map[string]int, n),
	}
	for i, id := range ids {
		pos.index[id] = i
	}
	if n <= 1 {
		return pos
	}

	springs := collectSprings(pos.index, rels)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	for i := range pos.Coords {
		pos.Coords[i] = Vec{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
	}

	// Ideal edge length for n points in the [-1, 1]^3 cube.
	k := math.Cbrt(8.0 / float64(n))
	temp0 := 0.2
	disp := make([]Vec, n)

	// The explicit float64 conversions forbid fused multiply-add, keeping
	// coordinates bit-identical across architectures.
	for iter := 0; iter < opts.Iterations; iter++ {
		clear(disp)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				d, dist := separation(pos.Coords[i], pos.Coords[j], i, j)
				f := float64(opts.Repulsion * k * k / dist)
				for a := range 3 {
					push := float64(d[a] / dist * f)
					disp[i][a] += push
					disp[j][a] -= push
				}
			}
		}

		for _, s := range springs {
			d, dist := separation(pos.Coords[s.from], pos.Coords[s.to], s.from, s.to)
			f := float64(opts.Attraction * s.weight * dist * dist / k)
			for a := range 3 {
				pull := float64(d[a] / dist * f)
				disp[s.from][a] -= pull
				disp[s.to][a] += pull
			}
		}

		temp := temp0 * (1 - float64(iter)/float64(opts.Iterations))
		for i := range pos.Coords {
			length := norm(disp[i])
			if length == 0 {
				continue
			}
			step := min(length, temp)
			for a := range 3 {
				pos.Coords[i][a] += float64(disp[i][a] / length * step)
			}
		}
	}

	normalize(pos.Coords, opts.Radius)
	return pos
}

type spring struct {
	from, to int
	weight   float64
}

// collectSprings resolves relationships to index pairs, merging both halves of
// a bidirectional relationship and keeping the strongest weight per pair.
func collectSprings(index map[string]int, rels []relgraph.Relationship) []spring {
	type pair struct{ a, b int }
	slot := make(map[pair]int)
	var out []spring
	for _, r := range rels {
		i, okI := index[r.Source]
		j, okJ := index[r.Target]
		if !okI || !okJ || i == j {
			continue
		}
		p := pair{min(i, j), max(i, j)}
		if at, seen := slot[p]; seen {
			out[at].weight = max(out[at].weight, r.Strength)
			continue
		}
		slot[p] = len(out)
		out = append(out, spring{from: p.a, to: p.b, weight: r.Strength})
	}
	return out
}

// separation returns a - b and its length. Coincident points are pulled apart
// along a direction derived from their indices so the result stays
// deterministic.
func separation(a, b Vec, i, j int) (Vec, float64) {
	d := Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
	dist := norm(d)
	if dist > 1e-9 {
		return d, dist
	}
	d = Vec{1e-3 * float64(i-j), 1e-3 * float64((i+j)%3-1), 1e-3}
	return d, norm(d)
}

func norm(v Vec) float64 {
	return math.Sqrt(float64(v[0]*v[0]) + float64(v[1]*v[1]) + float64(v[2]*v[2]))
}

// normalize centers coords on the origin and scales them so the farthest
// point lies at radius.
func normalize(coords []Vec, radius float64) {
	var c Vec
	for _, p := range coords {
		for a := range 3 {
			c[a] += p[a]
		}
	}
	inv := 1 / float64(len(coords))
	maxR := 0.0
	for i := range coords {
		for a := range 3 {
			coords[i][a] -= c[a] * inv
		}
		maxR = max(maxR, norm(coords[i]))
	}
	if maxR == 0 {
		return
	}
	scale := radius / maxR
	for i := range coords {
		for a := range 3 {
			coords[i][a] *= scale
		}
	}
}
