package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainHealthLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		expected string
	}{
		{
			name:     "strong at boundary",
			score:    80,
			expected: StrongValue,
		},
		{
			name:     "healthy",
			score:    65,
			expected: HealthyValue,
		},
		{
			name:     "watch at boundary",
			score:    40,
			expected: WatchValue,
		},
		{
			name:     "weak",
			score:    12,
			expected: WeakValue,
		},
		{
			name:     "negative score is weak",
			score:    -200,
			expected: WeakValue,
		},
		{
			name:     "perfect score",
			score:    100,
			expected: StrongValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainHealthLabel(tt.score))
		})
	}
}

func TestGetColorHealthLabel(t *testing.T) {
	// Colored output still contains the plain label text.
	assert.Contains(t, GetColorHealthLabel(90), StrongValue)
	assert.Contains(t, GetColorHealthLabel(10), WeakValue)
}

func TestGetPlainAnomalyLabel(t *testing.T) {
	assert.Equal(t, SevereValue, GetPlainAnomalyLabel(5.1))
	assert.Equal(t, SevereValue, GetPlainAnomalyLabel(-6))
	assert.Equal(t, HighValue, GetPlainAnomalyLabel(3))
	assert.Equal(t, ModerateValue, GetPlainAnomalyLabel(1.4))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 20))
	assert.Equal(t, "short", TruncateText("short", 0))

	got := TruncateText("a_very_long_identifier.csv", 12)
	assert.Len(t, got, 12)
	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, ".csv"))

	assert.Equal(t, "ab", TruncateText("abcdef", 2))
}

func TestGetCacheDBFilePath(t *testing.T) {
	assert.Contains(t, GetCacheDBFilePath(), ".finsight_cache.db")
}
