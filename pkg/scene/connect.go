package scene

import (
	"math"
	"sort"

	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/geom"
)

// Terminal identifies a component anchor taking part in a connection.
type Terminal struct {
	Component string `json:"component"`
	Anchor    string `json:"anchor"`
}

// Net is a set of terminals joined by coincident points and wires. Nets are
// informational; nothing checks them for shorts or open pins.
type Net struct {
	Terminals []Terminal `json:"terminals"`
	Junctions int        `json:"junctions"`
	Wires     int        `json:"wires"`
}

type pointKey struct{ x, y int64 }

func keyOf(p geom.Point) pointKey {
	return pointKey{int64(math.Round(p.X * 1e6)), int64(math.Round(p.Y * 1e6))}
}

// unionFind over point keys, remembering first-seen order.
type unionFind struct {
	parent map[pointKey]pointKey
	order  map[pointKey]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: map[pointKey]pointKey{}, order: map[pointKey]int{}}
}

func (u *unionFind) add(k pointKey) {
	if _, ok := u.parent[k]; !ok {
		u.parent[k] = k
		u.order[k] = len(u.order)
	}
}

func (u *unionFind) find(k pointKey) pointKey {
	u.add(k)
	for u.parent[k] != k {
		u.parent[k] = u.parent[u.parent[k]]
		k = u.parent[k]
	}
	return k
}

func (u *unionFind) union(a, b pointKey) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.order[rb] < u.order[ra] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}

// Terminals returns the connection anchors of c: every anchor except the
// center and aliases that repeat an earlier anchor's position.
func (c *Component) Terminals() []element.Anchor {
	if c.Kind == element.KindText {
		return nil
	}
	var out []element.Anchor
	seen := map[pointKey]bool{}
	for _, a := range c.Anchors {
		k := keyOf(a.Point)
		if a.Name == "center" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}

// Nets groups component terminals that are connected through coincident
// coordinates, wires, and junctions lying on a wire.
func (s *Scene) Nets() []Net {
	uf := newUnionFind()
	wires := s.Wires()
	junctions := s.Junctions()

	for _, c := range s.Components() {
		for _, a := range c.Terminals() {
			uf.add(keyOf(a.Point))
		}
	}
	for _, w := range wires {
		uf.union(keyOf(w.From), keyOf(w.To))
	}
	for _, j := range junctions {
		uf.add(keyOf(j.At))
	}
	// A point in the middle of a wire joins it (T connections).
	for k := range uf.parent {
		p := geom.Pt(float64(k.x)/1e6, float64(k.y)/1e6)
		for _, w := range wires {
			if onSegment(p, w.From, w.To) {
				uf.union(k, keyOf(w.From))
			}
		}
	}

	type group struct {
		net   Net
		first int
	}
	groups := map[pointKey]*group{}
	get := func(p geom.Point) *group {
		r := uf.find(keyOf(p))
		g, ok := groups[r]
		if !ok {
			g = &group{first: uf.order[r]}
			groups[r] = g
		}
		return g
	}
	for _, c := range s.Components() {
		for _, a := range c.Terminals() {
			g := get(a.Point)
			g.net.Terminals = append(g.net.Terminals, Terminal{Component: c.Name(), Anchor: a.Name})
		}
	}
	for _, w := range wires {
		get(w.From).net.Wires++
	}
	for _, j := range junctions {
		get(j.At).net.Junctions++
	}

	out := make([]*group, 0, len(groups))
	for _, g := range groups {
		if len(g.net.Terminals) > 0 {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].first < out[j].first })
	nets := make([]Net, len(out))
	for i, g := range out {
		nets[i] = g.net
	}
	return nets
}

func onSegment(p, a, b geom.Point) bool {
	if p.Eq(a) || p.Eq(b) {
		return false
	}
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l < geom.Epsilon {
		return false
	}
	ap := p.Sub(a)
	if math.Abs(d.X*ap.Y-d.Y*ap.X)/l > 1e-6 {
		return false
	}
	t := (ap.X*d.X + ap.Y*d.Y) / (l * l)
	return t > 0 && t < 1
}
