package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(10_000))
}

func TestNormalizeOffset(t *testing.T) {
	assert.Equal(t, 0, NormalizeOffset(-1))
	assert.Equal(t, 30, NormalizeOffset(30))
}

func TestParamsNormalize(t *testing.T) {
	params := Params{Limit: -1, Offset: -9}.Normalize()
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
}
