package typefmt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameOfFullVsAbbreviated(t *testing.T) {
	err := errors.New("boom")
	full := NameOf(err, false)
	short := NameOf(err, true)

	assert.Contains(t, full, "errors")
	assert.NotEmpty(t, short)
}

func TestNameGeneric(t *testing.T) {
	assert.Equal(t, "int", Name[int](true))
	assert.Equal(t, "int", Name[int](false))
}
