package warranty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCode(t *testing.T) {
	assert.Equal(t, "WR001", NextCode(CodePrefix, 0))
	assert.Equal(t, "WR003", NextCode(CodePrefix, 2))
	assert.Equal(t, "WR100", NextCode(CodePrefix, 99))
}

func TestFormatCode_GrowsPastThreeDigits(t *testing.T) {
	assert.Equal(t, "WR999", FormatCode(CodePrefix, 999))
	assert.Equal(t, "WR1000", FormatCode(CodePrefix, 1000))
}

func TestAssignSerials_FillsBlanks(t *testing.T) {
	out := AssignSerials([]string{"", "SN001", ""})

	assert.Len(t, out, 3)
	assert.Equal(t, "SN001", out[1])

	seen := map[string]bool{}
	for _, s := range out {
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "serial %s assigned twice", s)
		seen[s] = true
	}
}

func TestAssignSerials_KeepsExplicitSerials(t *testing.T) {
	out := AssignSerials([]string{"ABC-1", "ABC-2"})
	assert.Equal(t, []string{"ABC-1", "ABC-2"}, out)
}

func TestAssignSerials_ResolvesDuplicates(t *testing.T) {
	out := AssignSerials([]string{"SN001", "SN001", "SN001"})

	assert.Equal(t, "SN001", out[0])
	assert.NotEqual(t, out[0], out[1])
	assert.NotEqual(t, out[1], out[2])
	assert.NotEqual(t, out[0], out[2])
}

func TestAssignSerials_SkipsTakenGeneratedValues(t *testing.T) {
	// SN001 and SN002 are claimed explicitly, so the two blanks must scan past
	// them instead of colliding.
	out := AssignSerials([]string{"SN002", "", "SN001", ""})

	assert.Equal(t, "SN002", out[0])
	assert.Equal(t, "SN001", out[2])
	assert.Equal(t, "SN003", out[1])
	assert.Equal(t, "SN004", out[3])
}

func TestAssignSerials_TrimsWhitespace(t *testing.T) {
	out := AssignSerials([]string{"  SN009  "})
	assert.Equal(t, []string{"SN009"}, out)
}
