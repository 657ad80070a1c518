package palette

import (
	"math/rand"
	"testing"
)

func TestNamed(t *testing.T) {
	for _, name := range Names() {
		p, ok := Named(name)
		if !ok {
			t.Fatalf("Names() listed %q but Named can't find it", name)
		}
		for i, c := range p {
			if c.A != 255 {
				t.Errorf("%s slot %d is not opaque", name, i)
			}
		}
	}
	if _, ok := Named("no-such-palette"); ok {
		t.Error("unknown name resolved")
	}
}

func TestHermannContrast(t *testing.T) {
	p, _ := Named("hermann")
	if p[FillA] == p[Edge] {
		t.Error("hermann fill and edge colors must differ")
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewSource(42)))
	b := Random(rand.New(rand.NewSource(42)))
	if a != b {
		t.Error("same seed must produce the same palette")
	}
}

func TestShimmered(t *testing.T) {
	p, _ := Named("classic")
	r := rand.New(rand.NewSource(1))

	if got := Shimmered(p, -1, r); got != p {
		t.Error("negative shimmer must leave the palette untouched")
	}

	got := Shimmered(p, 0, r)
	if got[Background] != p[Background] {
		t.Error("shimmer must not touch the background slot")
	}
}
