package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestConvert_Primitives(t *testing.T) {
	n, err := Convert[int]("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	f, err := Convert[float64]("2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	b, err := Convert[bool]("true")
	require.NoError(t, err)
	assert.True(t, b)

	s, err := Convert[string](17)
	require.NoError(t, err)
	assert.Equal(t, "17", s)
}

func TestConvert_Collections(t *testing.T) {
	ints, err := Convert[[]int]([]string{"1", "2", "3"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ints)

	m, err := Convert[map[string]bool](map[string]string{"a": "true", "b": "false"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a": true, "b": false}, m)
}

func TestConvert_CtyValue(t *testing.T) {
	n, err := Convert[int64](cty.StringVal("9"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
}

func TestConvert_Failures(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		_, err := Convert[int]("abc")
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Message, "cannot convert 'abc' to int")
	})

	t.Run("fractional into int", func(t *testing.T) {
		_, err := Convert[int]("1.5")
		require.Error(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		_, err := Convert[string](nil)
		require.Error(t, err)
	})

	t.Run("list element path", func(t *testing.T) {
		_, err := Convert[[]int]([]string{"1", "x"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Path)
	})
}

func TestFor(t *testing.T) {
	s, err := For(reflect.TypeOf(0))
	require.NoError(t, err)
	assert.Equal(t, cty.Number, s.CtyType())
	assert.Equal(t, reflect.TypeOf(0), s.Type())

	out, err := s.Validate(7)
	require.NoError(t, err)
	assert.Equal(t, 7, out)

	_, err = For(reflect.TypeOf(func() {}))
	require.Error(t, err)
}
