package delay

import "testing"

func TestNewMultiValidation(t *testing.T) {
	if _, err := NewMulti(0, 16); err == nil {
		t.Fatal("expected error for channels=0")
	}

	if _, err := NewMulti(2, -1); err == nil {
		t.Fatal("expected error for maxDelay=-1")
	}
}

func TestMultiFanOut(t *testing.T) {
	m, err := NewMulti(2, 64)
	if err != nil {
		t.Fatal(err)
	}

	m.SetDelay(5)

	if m.Delay() != 5 {
		t.Fatalf("Delay: got %d want 5", m.Delay())
	}

	for ch := 0; ch < m.Channels(); ch++ {
		if d := m.lines[ch].Delay(); d != 5 {
			t.Fatalf("channel %d delay: got %d want 5", ch, d)
		}
	}
}

func TestMultiPhaseCoherent(t *testing.T) {
	m, err := NewMulti(2, 32)
	if err != nil {
		t.Fatal(err)
	}

	m.SetDelay(3)

	left := []float64{1, 2, 3, 4, 5, 6}
	right := []float64{1, 2, 3, 4, 5, 6}

	m.ProcessBlock(left, right)

	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("sample %d: channels diverge: %v vs %v", i, left[i], right[i])
		}
	}

	want := []float64{0, 0, 0, 1, 2, 3}
	for i := range want {
		if left[i] != want[i] {
			t.Fatalf("sample %d: got %v want %v", i, left[i], want[i])
		}
	}
}

func TestMultiProcessChannel(t *testing.T) {
	m, err := NewMulti(2, 16)
	if err != nil {
		t.Fatal(err)
	}

	m.SetDelay(1)

	buf := []float64{1, 2, 3}
	m.ProcessChannel(0, buf)

	want := []float64{0, 1, 2}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("sample %d: got %v want %v", i, buf[i], want[i])
		}
	}

	// Channel 1 is untouched and still starts from silence.
	other := []float64{7, 8, 9}
	m.ProcessChannel(1, other)

	wantOther := []float64{0, 7, 8}
	for i := range wantOther {
		if other[i] != wantOther[i] {
			t.Fatalf("channel 1 sample %d: got %v want %v", i, other[i], wantOther[i])
		}
	}
}

func TestMultiClear(t *testing.T) {
	m, err := NewMulti(2, 16)
	if err != nil {
		t.Fatal(err)
	}

	m.SetDelay(2)

	l := []float64{1, 2}
	r := []float64{3, 4}
	m.ProcessBlock(l, r)
	m.Clear()

	if m.Delay() != 2 {
		t.Fatalf("Delay after Clear: got %d want 2", m.Delay())
	}

	l = []float64{9, 9}
	r = []float64{9, 9}
	m.ProcessBlock(l, r)

	for i := range l {
		if l[i] != 0 || r[i] != 0 {
			t.Fatalf("sample %d after Clear: got %v/%v want 0/0", i, l[i], r[i])
		}
	}
}
