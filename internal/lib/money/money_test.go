package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		minor int64
		major float64
	}{
		{name: "basic plan price", minor: 29900, major: 299.00},
		{name: "premium plan price", minor: 59900, major: 599.00},
		{name: "single fils", minor: 1, major: 0.01},
		{name: "zero", minor: 0, major: 0},
		{name: "odd amount", minor: 12345, major: 123.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.major, ToMajor(tt.minor))
			assert.Equal(t, tt.minor, ToMinor(tt.major))
		})
	}
}

func TestRoundTrip_NoDrift(t *testing.T) {
	minor := int64(29900)
	for range 1000 {
		minor = ToMinor(ToMajor(minor))
	}
	assert.Equal(t, int64(29900), minor)
}

func TestPtrHelpers(t *testing.T) {
	assert.Nil(t, PtrToMinor(nil))
	assert.Nil(t, PtrToMajor(nil))

	major := 50.00
	minor := PtrToMinor(&major)
	assert.Equal(t, int64(5000), *minor)
	assert.Equal(t, 50.00, *PtrToMajor(minor))
}
