package goldmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteRange_Union(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byteRange{2, 9}, byteRange{2, 5}.union(byteRange{4, 9}))
	assert.Equal(t, byteRange{2, 5}, byteRange{2, 5}.union(noRange))
	assert.Equal(t, byteRange{4, 9}, noRange.union(byteRange{4, 9}))
	assert.False(t, noRange.union(noRange).known())
}

func TestMapper_ExtendBack(t *testing.T) {
	t.Parallel()

	m := newMapper([]byte("text\n  - [x] item\n## head"), Options{})

	assert.Equal(t, 7, m.extendBack(13, " \t-[]xX"))
	assert.Equal(t, 18, m.extendBack(21, "# "))
	assert.Equal(t, 0, m.extendBack(0, " "))
}

func TestMapper_LinkEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		off  int
		want int
	}{
		{"[a](b)", 2, 6},
		{"[a](b (c))", 2, 10},
		{"[a][ref] x", 2, 8},
		{"[a] x", 2, 3},
		{"[a", 2, 2},
	}

	for _, testCase := range tests {
		m := newMapper([]byte(testCase.src), Options{})
		assert.Equal(t, testCase.want, m.linkEnd(testCase.off), testCase.src)
	}
}

func TestIsThematicBreak(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"---", "***", "___", "- - -", " * * * ", "-----"} {
		assert.True(t, isThematicBreak([]byte(line)), line)
	}
	for _, line := range []string{"--", "-*-", "--a", "", "==="} {
		assert.False(t, isThematicBreak([]byte(line)), line)
	}
}

func TestMapper_SetextUnderline(t *testing.T) {
	t.Parallel()

	m := newMapper([]byte("Title\n=====\nnext"), Options{})
	end, ok := m.setextUnderline(5)
	assert.True(t, ok)
	assert.Equal(t, 11, end)

	m = newMapper([]byte("Title\nplain"), Options{})
	_, ok = m.setextUnderline(5)
	assert.False(t, ok)
}
