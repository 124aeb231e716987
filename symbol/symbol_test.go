package symbol

import "testing"

func Test_Factory_Mint_stable(t *testing.T) {
	f := NewFactory()

	a1 := f.Mint("A")
	b := f.Mint("B")
	a2 := f.Mint("A")

	if !a1.Equal(a2) {
		t.Fatalf("expected repeated Mint(\"A\") to return the same symbol")
	}
	if a1.Equal(b) {
		t.Fatalf("expected distinct names to mint distinct symbols")
	}
}

func Test_Factory_reserves_START_and_EOI(t *testing.T) {
	f := NewFactory()

	if s, ok := f.Lookup("START"); !ok || !s.Equal(START) {
		t.Fatalf("expected START to be pre-registered")
	}
	if s, ok := f.Lookup("EOI"); !ok || !s.Equal(EOI) {
		t.Fatalf("expected EOI to be pre-registered")
	}

	first := f.Mint("X")
	if first.ID() <= EOI.ID() {
		t.Fatalf("expected minted ids to start past the reserved sentinels, got %d", first.ID())
	}
}

func Test_Symbol_Less_totalOrder(t *testing.T) {
	f := NewFactory()
	a := f.Mint("A")
	b := f.Mint("B")

	if !a.Less(b) || b.Less(a) {
		t.Fatalf("expected a < b under minting order")
	}
}
