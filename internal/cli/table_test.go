package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Render(t *testing.T) {
	table := Table{
		Title:   "Example",
		Columns: []string{"name", "value"},
		Rows: [][]string{
			{"short", "1"},
			{"much longer cell", "2"},
		},
	}

	out := table.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "Example")
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "much longer cell")

	// Cells pad to the widest entry so columns line up.
	assert.Contains(t, out, "short"+strings.Repeat(" ", 11))
}

func TestTable_RenderWithoutTitle(t *testing.T) {
	table := Table{
		Columns: []string{"a"},
		Rows:    [][]string{{"1"}},
	}
	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"plain value", 16.528, "16.53"},
		{"nan", math.NaN(), "-"},
		{"positive infinity", math.Inf(1), "-"},
		{"negative infinity", math.Inf(-1), "-"},
		{"zero", 0, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.v))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "33.33%", FormatPercent(100.0/3))
	assert.Equal(t, "-", FormatPercent(math.NaN()))
}
