package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/distribuidora-api/pkg/normalize"
)

func TestFold_QuitaAcentosYMinusculas(t *testing.T) {
	assert.Equal(t, "acucar cristal", normalize.Fold("Açúcar Cristal"))
	assert.Equal(t, "cafe torrado", normalize.Fold("CAFÉ Torrado"))
	assert.Equal(t, "feijao", normalize.Fold("Feijão"))
}

func TestFold_TextoSinAcentosQuedaIgual(t *testing.T) {
	assert.Equal(t, "arroz tipo 1", normalize.Fold("arroz tipo 1"))
	assert.Equal(t, "", normalize.Fold(""))
}
