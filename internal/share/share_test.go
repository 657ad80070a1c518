package share

import (
	"strings"
	"testing"

	"github.com/irfansharif/hypertile/internal/classify"
	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/mobius"
	"github.com/irfansharif/hypertile/internal/tiling"
)

func sampleState(t *testing.T) State {
	t.Helper()
	d, err := tiling.Generate(4, 5, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	s := classify.DefaultSettings()
	s.Model = classify.ModelBand
	s.Shift = geom.MakePoint(0.125, -0.0625)
	s.Zoom = 1.5
	s.ShowOrnaments = false
	return State{
		P:             4,
		Q:             5,
		EdgeThickness: 0.02,
		Palette:       "hermann",
		Settings:      s,
		Descriptor:    d,
	}
}

func TestRoundTrip(t *testing.T) {
	st := sampleState(t)
	got, err := Decode(Encode(st))
	if err != nil {
		t.Fatal(err)
	}

	// The canonical edge transforms deliberately stay off the wire.
	want := st
	want.Descriptor.T01 = mobius.Transform{}
	want.Descriptor.T12 = mobius.Transform{}
	want.Descriptor.T20 = mobius.Transform{}

	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestFragmentIsURLSafe(t *testing.T) {
	frag := Encode(sampleState(t))
	if strings.ContainsAny(frag, "#?&=/+ ") {
		t.Errorf("fragment contains unsafe characters: %q", frag)
	}
}

func TestURL(t *testing.T) {
	st := sampleState(t)
	raw := URL("https://example.com/hypertile", st)
	got, err := FromURL(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got.P != st.P || got.Q != st.Q || got.Settings != st.Settings {
		t.Errorf("FromURL mismatch: %+v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode("!!!not base64!!!"); err == nil {
		t.Error("bad base64 must fail")
	}
	if _, err := Decode(""); err == nil {
		t.Error("empty fragment must fail")
	}
	if _, err := FromURL("https://example.com/hypertile"); err == nil {
		t.Error("fragment-less URL must fail")
	}

	// Tampered state with a non-hyperbolic pair is rejected.
	st := sampleState(t)
	st.P, st.Q = 3, 3
	if _, err := Decode(Encode(st)); err == nil {
		t.Error("invalid tiling pair must fail decode")
	}
}
