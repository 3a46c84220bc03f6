package rure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturesUnsetGroups(t *testing.T) {
	re := MustCompile(`(a)|(b)|()`)
	caps := re.NewCaptures()
	assert.Equal(t, 4, caps.Len())

	// Nothing has been searched yet.
	for i := 0; i < caps.Len(); i++ {
		_, ok := caps.At(i)
		assert.False(t, ok, "group %d", i)
	}

	require.True(t, re.FindCaptures([]byte("b"), caps))
	m, ok := caps.At(2)
	require.True(t, ok)
	assert.Equal(t, Match{Start: 0, End: 1}, m)
	_, ok = caps.At(1)
	assert.False(t, ok, "non-participating group is unset")

	// The empty group participates with a zero-width span at 0.
	require.True(t, re.FindCaptures([]byte("x"), caps))
	m, ok = caps.At(3)
	require.True(t, ok)
	assert.Equal(t, Match{Start: 0, End: 0}, m)
	_, ok = caps.At(1)
	assert.False(t, ok)
	_, ok = caps.At(2)
	assert.False(t, ok)
}

func TestCapturesOutOfRangeIndex(t *testing.T) {
	re := MustCompile(`(a)`)
	caps := re.NewCaptures()
	require.True(t, re.FindCaptures([]byte("a"), caps))

	for _, i := range []int{-1, 2, 100} {
		_, ok := caps.At(i)
		assert.False(t, ok, "index %d", i)
		assert.Nil(t, caps.Bytes(i))
		assert.Equal(t, "", caps.String(i))
	}
}

func TestCapturesByName(t *testing.T) {
	re := MustCompile(`(?P<word>\w+)\s(?P<num>\d+)?`)
	caps := re.NewCaptures()
	require.True(t, re.FindCaptures([]byte("go  42"), caps))

	word, ok := caps.Name("word")
	require.True(t, ok)
	i, ok := re.CaptureIndex("word")
	require.True(t, ok)
	pos, ok := caps.At(i)
	require.True(t, ok)
	assert.Equal(t, pos, word)
	assert.Equal(t, "go", caps.String(i))

	_, ok = caps.Name("num")
	assert.False(t, ok, "optional group did not participate")
	_, ok = caps.Name("missing")
	assert.False(t, ok)
	_, ok = caps.Name("WORD")
	assert.False(t, ok)
}

func TestCapturesGet(t *testing.T) {
	re := MustCompile(`(?P<y>\d{4})-(\d{2})`)
	caps := re.NewCaptures()
	require.True(t, re.FindCaptures([]byte("on 2024-05"), caps))

	tests := []struct {
		key    Key
		want   Match
		wantOK bool
	}{
		{Index(0), Match{Start: 3, End: 10}, true},
		{Index(1), Match{Start: 3, End: 7}, true},
		{Index(2), Match{Start: 8, End: 10}, true},
		{Index(3), Match{}, false},
		{Name("y"), Match{Start: 3, End: 7}, true},
		{Name("m"), Match{}, false},
		{Key{}, Match{Start: 3, End: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := caps.Get(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapturesMap(t *testing.T) {
	re := MustCompile(`(?P<key>\w+)=(?P<val>\d+)?(x)?`)
	caps := re.NewCaptures()
	require.True(t, re.FindCaptures([]byte("a=1"), caps))

	want := map[Key]Match{
		Index(0):    {Start: 0, End: 3},
		Index(1):    {Start: 0, End: 1},
		Name("key"): {Start: 0, End: 1},
		Index(2):    {Start: 2, End: 3},
		Name("val"): {Start: 2, End: 3},
	}
	assert.Equal(t, want, caps.Map())

	require.True(t, re.FindCaptures([]byte("b="), caps))
	got := caps.Map()
	assert.Len(t, got, 3)
	assert.NotContains(t, got, Name("val"))
	assert.NotContains(t, got, Index(3))
}

func TestCapturesFailedSearchClears(t *testing.T) {
	re := MustCompile(`(\d+)`)
	caps := re.NewCaptures()
	require.True(t, re.FindCaptures([]byte("x1"), caps))
	assert.Equal(t, "1", caps.String(1))

	assert.False(t, re.FindCaptures([]byte("none"), caps))
	_, ok := caps.At(0)
	assert.False(t, ok)
	assert.Nil(t, caps.Bytes(1))
}

func TestCapturesRebind(t *testing.T) {
	one := MustCompile(`(a)`)
	three := MustCompile(`(a)(b)(c)`)

	caps := one.NewCaptures()
	require.True(t, three.FindCaptures([]byte("abc"), caps))
	assert.Equal(t, 4, caps.Len())
	assert.Equal(t, "c", caps.String(3))
}

func TestKey(t *testing.T) {
	k := Index(3)
	i, ok := k.Index()
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	_, ok = k.Name()
	assert.False(t, ok)
	assert.False(t, k.IsName())
	assert.Equal(t, "3", k.String())

	n := Name("year")
	s, ok := n.Name()
	assert.True(t, ok)
	assert.Equal(t, "year", s)
	_, ok = n.Index()
	assert.False(t, ok)
	assert.True(t, n.IsName())
	assert.Equal(t, `"year"`, n.String())

	assert.NotEqual(t, Index(0), Name(""))
}
