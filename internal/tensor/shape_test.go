package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{4, 3, 8, 8}, 768},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Fatalf("strides = %v, want %v", strides, want)
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b    Shape
		want    Shape
		needs   bool
		wantErr bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{4, 1, 1, 1}, Shape{4, 3, 8, 8}, Shape{4, 3, 8, 8}, true, false},
		{Shape{8}, Shape{4, 3, 8, 8}, Shape{4, 3, 8, 8}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		got, needs, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v): expected error", tt.a, tt.b)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) || needs != tt.needs {
			t.Errorf("BroadcastShapes(%v, %v) = %v, %v; want %v, %v",
				tt.a, tt.b, got, needs, tt.want, tt.needs)
		}
	}
}
