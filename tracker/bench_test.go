package tracker_test

import (
	"strconv"
	"testing"

	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/tracker"
)

// BenchmarkKey measures canonical key computation on the hexahexaflexagon.
func BenchmarkKey(b *testing.B) {
	fx, err := flexagon.FromString(hexahexa, "")
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tracker.Key(fx, 1)
	}
}

// BenchmarkMinimalRotation measures Booth's algorithm over growing inputs.
func BenchmarkMinimalRotation(b *testing.B) {
	for _, n := range []int{6, 60, 600} {
		s := make([]string, n)
		for i := range s {
			s[i] = strconv.Itoa((i * 7) % 5)
		}
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = tracker.MinimalRotation(s)
			}
		})
	}
}
