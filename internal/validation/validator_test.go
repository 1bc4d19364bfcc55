package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID     string `json:"id" validate:"required"`
	Price  int64  `json:"price" validate:"min=0"`
	Weight string `json:"weight" validate:"omitempty,oneof=light heavy"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(sample{ID: "IDN_001", Price: 10, Weight: "light"}))
	})

	t.Run("collects every failure keyed by json name", func(t *testing.T) {
		err := Struct(sample{Price: -1, Weight: "medium"})
		require.Error(t, err)

		var verrs Errors
		require.True(t, errors.As(err, &verrs))
		require.Len(t, verrs, 3)

		assert.Equal(t, "id", verrs[0].Field)
		assert.Equal(t, "required", verrs[0].Tag)
		assert.Equal(t, "price must be at least 0", verrs[1].Message)
		assert.Equal(t, "oneof", verrs[2].Tag)
		assert.Contains(t, err.Error(), `weight must be one of: light heavy (got "medium")`)
	})
}

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}
