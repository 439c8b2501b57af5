package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMeta(t *testing.T) {
	m := NewMeta(45, 2, 20)

	assert.Equal(t, 2, m.Page)
	assert.Equal(t, 20, m.Limit)
	assert.Equal(t, int64(45), m.Total)
	assert.Equal(t, 3, m.TotalPages)
}

func TestNewMeta_ExactMultiple(t *testing.T) {
	m := NewMeta(40, 1, 20)
	assert.Equal(t, 2, m.TotalPages)
}

func TestNewMeta_Empty(t *testing.T) {
	m := NewMeta(0, 1, 20)
	assert.Equal(t, 0, m.TotalPages)
}

func TestNewMeta_ZeroLimit(t *testing.T) {
	m := NewMeta(45, 1, 0)
	assert.Equal(t, 0, m.TotalPages)
}

func TestNewEnvelope(t *testing.T) {
	data := []string{"a", "b"}
	env := NewEnvelope(data, 2, 1, 20)

	assert.Equal(t, data, env.Data)
	assert.Equal(t, int64(2), env.Meta.Total)
	assert.Equal(t, 1, env.Meta.TotalPages)
}
