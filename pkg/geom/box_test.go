package geom

import "testing"

func TestEmptyBox(t *testing.T) {
	e := EmptyBox()
	if !e.IsEmpty() {
		t.Error("EmptyBox().IsEmpty() = false")
	}
	if e.Width() != 0 || e.Height() != 0 {
		t.Errorf("empty box spans = %v x %v, want 0 x 0", e.Width(), e.Height())
	}
}

func TestZeroAreaBoxIsNotEmpty(t *testing.T) {
	// A degenerate box at a point is usable geometry; only the absence of
	// geometry is "empty".
	b := NewBox(5, 5, 5, 5)
	if b.IsEmpty() {
		t.Error("zero-area box reported empty")
	}
}

func TestNewBoxNormalizes(t *testing.T) {
	b := NewBox(10, 20, -3, 4)
	want := Box{MinX: -3, MinY: 4, MaxX: 10, MaxY: 20}
	if b != want {
		t.Errorf("NewBox = %+v, want %+v", b, want)
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want Box
	}{
		{
			name: "disjoint",
			a:    NewBox(0, 0, 1, 1),
			b:    NewBox(5, 5, 6, 7),
			want: NewBox(0, 0, 6, 7),
		},
		{
			name: "contained",
			a:    NewBox(0, 0, 10, 10),
			b:    NewBox(2, 2, 3, 3),
			want: NewBox(0, 0, 10, 10),
		},
		{
			name: "empty is neutral on the left",
			a:    EmptyBox(),
			b:    NewBox(1, 2, 3, 4),
			want: NewBox(1, 2, 3, 4),
		},
		{
			name: "empty is neutral on the right",
			a:    NewBox(1, 2, 3, 4),
			b:    EmptyBox(),
			want: NewBox(1, 2, 3, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); !got.Near(tt.want, 0) {
				t.Errorf("Union = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnionOfEmptiesIsEmpty(t *testing.T) {
	if got := EmptyBox().Union(EmptyBox()); !got.IsEmpty() {
		t.Errorf("union of empties = %+v, want empty", got)
	}
}

func TestExtendPoint(t *testing.T) {
	b := EmptyBox().ExtendPoint(3, 4)
	if b.IsEmpty() {
		t.Fatal("box empty after ExtendPoint")
	}
	b = b.ExtendPoint(-1, 10)
	want := NewBox(-1, 4, 3, 10)
	if !b.Near(want, 0) {
		t.Errorf("box = %+v, want %+v", b, want)
	}
}

func TestTranslate(t *testing.T) {
	b := NewBox(1, 2, 3, 4).Translate(10, -2)
	want := NewBox(11, 0, 13, 2)
	if !b.Near(want, 0) {
		t.Errorf("Translate = %+v, want %+v", b, want)
	}

	if got := EmptyBox().Translate(10, 10); !got.IsEmpty() {
		t.Errorf("translated empty box = %+v, want empty", got)
	}
}

func TestCenters(t *testing.T) {
	b := NewBox(0, 10, 4, 30)
	if b.CenterX() != 2 {
		t.Errorf("CenterX = %v, want 2", b.CenterX())
	}
	if b.CenterY() != 20 {
		t.Errorf("CenterY = %v, want 20", b.CenterY())
	}
}
