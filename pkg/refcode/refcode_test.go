package refcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	gen := NewGenerator("KMP", 5)

	code, err := gen.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(code, "KMP-"))
	assert.Len(t, code, len("KMP-")+5)

	for _, c := range code[len("KMP-"):] {
		assert.Contains(t, alphabet, string(c))
	}
}

func TestGenerate_MinLength(t *testing.T) {
	gen := NewGenerator("KMP", 2)

	code, err := gen.Generate()
	require.NoError(t, err)

	// Длина ниже 5 поднимается до 5
	assert.Len(t, code, len("KMP-")+5)
}

func TestGenerate_Uniqueness(t *testing.T) {
	gen := NewGenerator("KMP", 5)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// Коллизии на 1000 кодах из пространства 36^5 крайне маловероятны
	assert.Greater(t, len(seen), 990)
}
