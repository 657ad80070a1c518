// Package share serializes the complete viewer state, settings plus the
// derived tiling descriptor, into a URL fragment. The payload is a flat
// key/value form, base64url-encoded so it survives shells, chat clients and
// address bars. Floats round-trip exactly (shortest form, 64-bit), so a
// decoded state renders pixel-identically.
package share

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/irfansharif/hypertile/internal/classify"
	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/tiling"
)

// State is everything a receiving viewer needs to reproduce the picture.
// The descriptor travels along with its inputs so the receiver renders the
// exact same geometry without regenerating it.
type State struct {
	P             int
	Q             int
	EdgeThickness float64
	Palette       string
	Settings      classify.Settings
	Descriptor    tiling.Descriptor
}

type form struct {
	v   url.Values
	err error
}

func (f *form) putInt(key string, n int) { f.v.Set(key, strconv.Itoa(n)) }
func (f *form) putFloat(key string, x float64) {
	f.v.Set(key, strconv.FormatFloat(x, 'g', -1, 64))
}
func (f *form) putBool(key string, b bool) {
	if b {
		f.v.Set(key, "1")
	} else {
		f.v.Set(key, "0")
	}
}
func (f *form) putPoint(key string, p geom.Point) {
	f.putFloat(key+"x", p.X)
	f.putFloat(key+"y", p.Y)
}
func (f *form) putCircle(key string, c geom.Circle) {
	f.putPoint(key+"c", c.Center)
	f.putFloat(key+"r", c.Radius)
}

func (f *form) getInt(key string) int {
	n, err := strconv.Atoi(f.v.Get(key))
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("field %q: %v", key, err)
	}
	return n
}
func (f *form) getFloat(key string) float64 {
	x, err := strconv.ParseFloat(f.v.Get(key), 64)
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("field %q: %v", key, err)
	}
	return x
}
func (f *form) getBool(key string) bool { return f.v.Get(key) == "1" }
func (f *form) getPoint(key string) geom.Point {
	return geom.MakePoint(f.getFloat(key+"x"), f.getFloat(key+"y"))
}
func (f *form) getCircle(key string) geom.Circle {
	return geom.MakeCircle(f.getPoint(key+"c"), f.getFloat(key+"r"))
}

// Encode serializes st to a fragment-safe string.
func Encode(st State) string {
	f := &form{v: url.Values{}}

	f.putInt("p", st.P)
	f.putInt("q", st.Q)
	f.putFloat("et", st.EdgeThickness)
	f.v.Set("pal", st.Palette)

	s := st.Settings
	f.putInt("model", int(s.Model))
	f.putInt("fill", int(s.Fill))
	f.putPoint("shift", s.Shift)
	f.putFloat("zoom", s.Zoom)
	f.putInt("iter", s.MaxIterations)
	f.putBool("edges", s.ShowEdges)
	f.putBool("verts", s.ShowVertices)
	f.putBool("orns", s.ShowOrnaments)

	d := st.Descriptor
	f.putPoint("invc", d.InvCen)
	f.putFloat("invr", d.InvRad)
	f.putPoint("ref", d.RefNrm)
	f.putPoint("v1", d.V1)
	f.putPoint("v2", d.V2)
	for _, pp := range []struct {
		key string
		pt  geom.Point
	}{
		{"d0", d.D}, {"e0", d.E},
		{"d1", d.D1}, {"e1", d.E1},
		{"d1p", d.D1p}, {"e1p", d.E1p},
		{"d2", d.D2}, {"e2", d.E2},
	} {
		f.putPoint(pp.key, pp.pt)
	}
	f.putCircle("ce01", d.Edge01)
	f.putCircle("ce12", d.Edge12)
	f.putCircle("ce20", d.Edge20)
	f.putCircle("cv0", d.V0Enlarged)
	f.putCircle("cv1", d.V1Enlarged)
	f.putCircle("cv2", d.V2Enlarged)
	f.putCircle("snakes", d.C2RotSnakes)

	return base64.RawURLEncoding.EncodeToString([]byte(f.v.Encode()))
}

// Decode parses a fragment produced by Encode. The descriptor's canonical
// edge transforms are not part of the wire format; rendering needs only the
// geometric fields.
func Decode(fragment string) (State, error) {
	raw, err := base64.RawURLEncoding.DecodeString(fragment)
	if err != nil {
		return State{}, fmt.Errorf("decoding fragment: %w", err)
	}
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return State{}, fmt.Errorf("parsing fragment form: %w", err)
	}

	f := &form{v: values}
	st := State{
		P:             f.getInt("p"),
		Q:             f.getInt("q"),
		EdgeThickness: f.getFloat("et"),
		Palette:       values.Get("pal"),
		Settings: classify.Settings{
			Model:         classify.Model(f.getInt("model")),
			Fill:          classify.FillMode(f.getInt("fill")),
			Shift:         f.getPoint("shift"),
			Zoom:          f.getFloat("zoom"),
			MaxIterations: f.getInt("iter"),
			ShowEdges:     f.getBool("edges"),
			ShowVertices:  f.getBool("verts"),
			ShowOrnaments: f.getBool("orns"),
		},
	}

	d := tiling.Descriptor{
		P:             st.P,
		Q:             st.Q,
		EdgeThickness: st.EdgeThickness,
		InvCen:        f.getPoint("invc"),
		InvRad:        f.getFloat("invr"),
		RefNrm:        f.getPoint("ref"),
		V1:            f.getPoint("v1"),
		V2:            f.getPoint("v2"),
		D:             f.getPoint("d0"),
		E:             f.getPoint("e0"),
		D1:            f.getPoint("d1"),
		E1:            f.getPoint("e1"),
		D1p:           f.getPoint("d1p"),
		E1p:           f.getPoint("e1p"),
		D2:            f.getPoint("d2"),
		E2:            f.getPoint("e2"),
		Edge01:        f.getCircle("ce01"),
		Edge12:        f.getCircle("ce12"),
		Edge20:        f.getCircle("ce20"),
		V0Enlarged:    f.getCircle("cv0"),
		V1Enlarged:    f.getCircle("cv1"),
		V2Enlarged:    f.getCircle("cv2"),
		C2RotSnakes:   f.getCircle("snakes"),
	}
	st.Descriptor = d

	if f.err != nil {
		return State{}, f.err
	}
	if !tiling.Valid(st.P, st.Q) {
		return State{}, fmt.Errorf("shared state carries invalid tiling {%d,%d}", st.P, st.Q)
	}
	return st, nil
}

// URL appends the encoded state to base as a fragment.
func URL(base string, st State) string {
	return base + "#" + Encode(st)
}

// FromURL extracts and decodes the fragment of a shared URL. Accepts a bare
// fragment as well.
func FromURL(raw string) (State, error) {
	fragment := raw
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		fragment = raw[i+1:]
	}
	if fragment == "" {
		return State{}, fmt.Errorf("no state fragment in %q", raw)
	}
	return Decode(fragment)
}
