package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/ledger"
)

func TestApply_PorTipo(t *testing.T) {
	cases := []struct {
		name     string
		tipo     string
		cantidad int64
		stock    int64
		want     int64
	}{
		{"entrada suma", entity.MovEntrada, 10, 15, 25},
		{"devolucion suma", entity.MovDevolucion, 3, 12, 15},
		{"salida resta", entity.MovSalida, 85, 100, 15},
		{"salida deja stock en cero", entity.MovSalida, 15, 15, 0},
		{"ajuste fija valor absoluto", entity.MovAjuste, 40, 7, 40},
		{"ajuste a cero", entity.MovAjuste, 0, 99, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ledger.Apply(tc.tipo, tc.cantidad, tc.stock)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Frontera de stock: cantidad == stock pasa, cantidad == stock+1 se rechaza.
func TestApply_SalidaInsuficiente(t *testing.T) {
	_, err := ledger.Apply(entity.MovSalida, 16, 15)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(15), stockErr.Disponible)
	assert.Equal(t, int64(16), stockErr.Solicitado)
}

func TestApply_TipoDesconocido(t *testing.T) {
	_, err := ledger.Apply("traslado", 1, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInverse(t *testing.T) {
	cases := map[string]string{
		entity.MovEntrada:    entity.MovSalida,
		entity.MovSalida:     entity.MovEntrada,
		entity.MovDevolucion: entity.MovSalida,
		entity.MovAjuste:     entity.MovAjuste,
	}
	for tipo, want := range cases {
		got, err := ledger.Inverse(tipo)
		require.NoError(t, err)
		assert.Equal(t, want, got, "inverso de %s", tipo)
	}

	_, err := ledger.Inverse("otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La compensación de un ajuste restaura el stock previo al ajuste.
func TestCompensationQuantity_Ajuste(t *testing.T) {
	orig := &entity.Movement{Tipo: entity.MovAjuste, Cantidad: 40, StockAnterior: 7}
	assert.Equal(t, int64(7), ledger.CompensationQuantity(orig))

	salida := &entity.Movement{Tipo: entity.MovSalida, Cantidad: 85, StockAnterior: 100}
	assert.Equal(t, int64(85), ledger.CompensationQuantity(salida))
}
