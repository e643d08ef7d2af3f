package delay

import "testing"

func BenchmarkProcessSample(b *testing.B) {
	l, err := New(4096)
	if err != nil {
		b.Fatal(err)
	}

	l.SetDelay(1024)

	b.ReportAllocs()
	b.ResetTimer()

	var sink float64
	for i := 0; i < b.N; i++ {
		sink = l.ProcessSample(float64(i))
	}

	_ = sink
}

func BenchmarkProcessBlock(b *testing.B) {
	l, err := New(4096)
	if err != nil {
		b.Fatal(err)
	}

	l.SetDelay(1024)

	buf := make([]float64, 512)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.ProcessBlock(buf)
	}
}

func BenchmarkProcessBlockPassthrough(b *testing.B) {
	l, err := New(4096)
	if err != nil {
		b.Fatal(err)
	}

	buf := make([]float64, 512)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.ProcessBlock(buf)
	}
}
