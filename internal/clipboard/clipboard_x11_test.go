//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestTrimText(t *testing.T) {
	if got := string(trimText([]byte("#ffffff\x00"))); got != "#ffffff" {
		t.Fatalf("got %q", got)
	}
	if got := string(trimText([]byte("#ffffff"))); got != "#ffffff" {
		t.Fatalf("got %q", got)
	}
	if got := trimText(nil); len(got) != 0 {
		t.Fatalf("got %q", got)
	}
}

func TestOffersFollowData(t *testing.T) {
	o := &selectionOwner{atoms: atoms{targets: 1, utf8: 2, textPlain: 3, png: 4}}
	if got := o.offers(formatImage, nil); len(got) != 1 || got[0] != 1 {
		t.Fatalf("empty offers %v", got)
	}
	if got := o.offers(formatImage, []byte{1}); len(got) != 2 || got[1] != 4 {
		t.Fatalf("image offers %v", got)
	}
	got := o.offers(formatText, []byte("x"))
	if len(got) != 4 || got[1] != 2 || got[2] != xproto.AtomString || got[3] != 3 {
		t.Fatalf("text offers %v", got)
	}
}

func TestAtomsToBytes(t *testing.T) {
	buf := atomsToBytes([]xproto.Atom{1, 0x01020304})
	want := []byte{1, 0, 0, 0, 4, 3, 2, 1}
	if string(buf) != string(want) {
		t.Fatalf("got %v", buf)
	}
}
