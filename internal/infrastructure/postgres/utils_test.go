package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPatch_UnCampo(t *testing.T) {
	set, args := buildPatch([]patchField{{column: "name", value: "Arroz"}})
	assert.Equal(t, "name = $2", set)
	assert.Equal(t, []any{"Arroz"}, args)
}

func TestBuildPatch_VariosCampos_EnOrden(t *testing.T) {
	set, args := buildPatch([]patchField{
		{column: "name", value: "Arroz"},
		{column: "category", value: "Granos"},
		{column: "min_stock", value: int64(5)},
	})
	assert.Equal(t, "name = $2, category = $3, min_stock = $4", set)
	assert.Equal(t, []any{"Arroz", "Granos", int64(5)}, args)
}

func TestBuildPatch_SinCampos(t *testing.T) {
	set, args := buildPatch(nil)
	assert.Empty(t, set)
	assert.Nil(t, args)
}
