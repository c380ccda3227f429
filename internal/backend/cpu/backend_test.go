package cpu

import (
	"math"
	"testing"

	"github.com/flowml/flowpath/internal/tensor"
)

func fromSlice(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat64(), data)
	return raw
}

func TestAddSameShape(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromSlice(t, []float64{10, 20, 30, 40}, tensor.Shape{2, 2})

	c := backend.Add(a, b)
	want := []float64{11, 22, 33, 44}
	for i, w := range want {
		if c.AsFloat64()[i] != w {
			t.Errorf("Add[%d] = %v, want %v", i, c.AsFloat64()[i], w)
		}
	}
}

func TestAddBroadcast(t *testing.T) {
	backend := New()

	// (4, 1, 1, 1) * (4, 3, 2, 2): time-like against data-like shapes.
	a := fromSlice(t, []float64{1, 2, 3, 4}, tensor.Shape{4, 1, 1, 1})
	data := make([]float64, 4*3*2*2)
	for i := range data {
		data[i] = 1
	}
	b := fromSlice(t, data, tensor.Shape{4, 3, 2, 2})

	c := backend.Mul(a, b)
	if !c.Shape().Equal(tensor.Shape{4, 3, 2, 2}) {
		t.Fatalf("shape = %v, want [4 3 2 2]", c.Shape())
	}

	out := c.AsFloat64()
	perSample := 3 * 2 * 2
	for batch := 0; batch < 4; batch++ {
		for i := 0; i < perSample; i++ {
			if got := out[batch*perSample+i]; got != float64(batch+1) {
				t.Fatalf("batch %d element %d = %v, want %v", batch, i, got, batch+1)
			}
		}
	}
}

func TestSubDivMul(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float64{6, 8}, tensor.Shape{2})
	b := fromSlice(t, []float64{2, 4}, tensor.Shape{2})

	sub := backend.Sub(a, b).AsFloat64()
	if sub[0] != 4 || sub[1] != 4 {
		t.Errorf("Sub = %v, want [4 4]", sub)
	}

	div := backend.Div(a, b).AsFloat64()
	if div[0] != 3 || div[1] != 2 {
		t.Errorf("Div = %v, want [3 2]", div)
	}

	mul := backend.Mul(a, b).AsFloat64()
	if mul[0] != 12 || mul[1] != 32 {
		t.Errorf("Mul = %v, want [12 32]", mul)
	}
}

func TestScalarOps(t *testing.T) {
	backend := New()

	x := fromSlice(t, []float64{1, 2, 3}, tensor.Shape{3})

	got := backend.MulScalar(x, 2.0).AsFloat64()
	for i, w := range []float64{2, 4, 6} {
		if got[i] != w {
			t.Errorf("MulScalar[%d] = %v, want %v", i, got[i], w)
		}
	}

	got = backend.AddScalar(x, 1.0).AsFloat64()
	for i, w := range []float64{2, 3, 4} {
		if got[i] != w {
			t.Errorf("AddScalar[%d] = %v, want %v", i, got[i], w)
		}
	}

	got = backend.SubScalar(x, 1.0).AsFloat64()
	for i, w := range []float64{0, 1, 2} {
		if got[i] != w {
			t.Errorf("SubScalar[%d] = %v, want %v", i, got[i], w)
		}
	}

	got = backend.DivScalar(x, 2.0).AsFloat64()
	for i, w := range []float64{0.5, 1, 1.5} {
		if got[i] != w {
			t.Errorf("DivScalar[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestUnaryMath(t *testing.T) {
	backend := New()

	x := fromSlice(t, []float64{0, math.Pi / 2, math.Pi}, tensor.Shape{3})

	sin := backend.Sin(x).AsFloat64()
	cos := backend.Cos(x).AsFloat64()
	for i := range sin {
		if math.Abs(sin[i]-math.Sin(x.AsFloat64()[i])) > 1e-15 {
			t.Errorf("Sin[%d] = %v", i, sin[i])
		}
		if math.Abs(cos[i]-math.Cos(x.AsFloat64()[i])) > 1e-15 {
			t.Errorf("Cos[%d] = %v", i, cos[i])
		}
	}

	y := fromSlice(t, []float64{1, math.E, 4}, tensor.Shape{3})
	log := backend.Log(y).AsFloat64()
	want := []float64{0, 1, math.Log(4)}
	for i := range want {
		if math.Abs(log[i]-want[i]) > 1e-15 {
			t.Errorf("Log[%d] = %v, want %v", i, log[i], want[i])
		}
	}

	neg := backend.Neg(y).AsFloat64()
	if neg[0] != -1 {
		t.Errorf("Neg[0] = %v, want -1", neg[0])
	}

	sqrt := backend.Sqrt(fromSlice(t, []float64{4, 9}, tensor.Shape{2})).AsFloat64()
	if sqrt[0] != 2 || sqrt[1] != 3 {
		t.Errorf("Sqrt = %v, want [2 3]", sqrt)
	}
}

func TestLogNonPositiveIsNonFinite(t *testing.T) {
	backend := New()

	x := fromSlice(t, []float64{0, -1}, tensor.Shape{2})
	got := backend.Log(x).AsFloat64()

	if !math.IsInf(got[0], -1) {
		t.Errorf("Log(0) = %v, want -Inf", got[0])
	}
	if !math.IsNaN(got[1]) {
		t.Errorf("Log(-1) = %v, want NaN", got[1])
	}
}

func TestExpand(t *testing.T) {
	backend := New()

	x := fromSlice(t, []float64{1, 2}, tensor.Shape{2, 1})
	got := backend.Expand(x, tensor.Shape{2, 3})

	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", got.Shape())
	}
	want := []float64{1, 1, 1, 2, 2, 2}
	for i, w := range want {
		if got.AsFloat64()[i] != w {
			t.Errorf("Expand[%d] = %v, want %v", i, got.AsFloat64()[i], w)
		}
	}
}

func TestReshapeIsView(t *testing.T) {
	backend := New()

	x := fromSlice(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{6})
	y := backend.Reshape(x, tensor.Shape{2, 3})

	if !y.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", y.Shape())
	}

	// Views share the buffer.
	x.AsFloat64()[0] = 99
	if y.AsFloat64()[0] != 99 {
		t.Error("Reshape did not return a view")
	}
}

func TestIncompatibleShapesPanic(t *testing.T) {
	backend := New()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for incompatible shapes")
		}
	}()

	a := fromSlice(t, []float64{1, 2, 3}, tensor.Shape{3})
	b := fromSlice(t, []float64{1, 2}, tensor.Shape{2})
	backend.Add(a, b)
}
