package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiaSemanaDe(t *testing.T) {
	casos := []struct {
		data string
		dia  int
	}{
		{"2025-03-10", 0}, // segunda
		{"2025-03-11", 1},
		{"2025-03-14", 4}, // sexta
		{"2025-03-15", 5},
		{"2025-03-16", 6}, // domingo
	}
	for _, caso := range casos {
		parsed, err := time.Parse("2006-01-02", caso.data)
		assert.NoError(t, err)
		assert.Equal(t, caso.dia, DiaSemanaDe(parsed), "data %s", caso.data)
	}
}

func TestTipoEventoValido(t *testing.T) {
	assert.True(t, TipoEventoValido(TipoVisita))
	assert.True(t, TipoEventoValido(TipoOutro))
	assert.False(t, TipoEventoValido(""))
	assert.False(t, TipoEventoValido("festa"))
}
