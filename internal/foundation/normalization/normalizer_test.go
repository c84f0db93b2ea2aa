package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func colors() *Enum[color] {
	return NewEnum("color", map[string]color{"red": "red", "Blue": "blue"}, "red")
}

func TestEnum_Parse(t *testing.T) {
	e := colors()

	v, err := e.Parse("  BLUE ")
	require.NoError(t, err)
	assert.Equal(t, color("blue"), v)

	v, err = e.Parse("")
	require.NoError(t, err)
	assert.Equal(t, color("red"), v)

	_, err = e.Parse("green")
	require.Error(t, err)
	assert.Equal(t, `invalid color "green", valid options: blue, red`, err.Error())
}

func TestEnum_Normalize(t *testing.T) {
	e := colors()
	assert.Equal(t, color("blue"), e.Normalize("blue"))
	assert.Equal(t, color("red"), e.Normalize("green"))
}

func TestEnum_ValuesIsCopy(t *testing.T) {
	e := colors()
	values := e.Values()
	values[0] = "mutated"
	assert.Equal(t, []string{"blue", "red"}, e.Values())
}
