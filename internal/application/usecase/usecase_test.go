package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panol-app/bodega-api/internal/application/dto"
	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
	"github.com/panol-app/bodega-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs de repositorio: solo los métodos que cada test ejercita devuelven
// datos; el resto retorna ceros.
// ──────────────────────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[string]*entity.Customer
	byRUT     map[string]*entity.Customer
	softDel   []string
	hardDel   []string
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{
		customers: map[string]*entity.Customer{},
		byRUT:     map[string]*entity.Customer{},
	}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	r.byRUT[c.RUT] = c
	return nil
}

func (r *stubCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *stubCustomerRepo) GetByRUT(_ context.Context, rut string) (*entity.Customer, error) {
	return r.byRUT[rut], nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ repository.CustomerFilter) ([]*entity.Customer, int, error) {
	return nil, 0, nil
}

func (r *stubCustomerRepo) SoftDelete(_ context.Context, id string) error {
	r.softDel = append(r.softDel, id)
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id string) error {
	r.hardDel = append(r.hardDel, id)
	return nil
}

type stubMovementRepo struct {
	consumo      decimal.Decimal
	porCliente   int64
	porProducto  int64
	statsPorTipo []repository.KindStats
	consultasMes []time.Time
}

func (r *stubMovementRepo) Create(context.Context, *entity.Movement) error { return nil }
func (r *stubMovementRepo) GetByID(context.Context, string) (*entity.Movement, error) {
	return nil, nil
}
func (r *stubMovementRepo) List(context.Context, repository.MovementFilter) ([]*entity.Movement, int, error) {
	return nil, 0, nil
}
func (r *stubMovementRepo) MarkVoided(context.Context, string, string) error { return nil }
func (r *stubMovementRepo) MonthlyConsumption(_ context.Context, _ string, desde time.Time) (decimal.Decimal, error) {
	r.consultasMes = append(r.consultasMes, desde)
	return r.consumo, nil
}
func (r *stubMovementRepo) StatsByKind(context.Context, time.Time, time.Time) ([]repository.KindStats, error) {
	return r.statsPorTipo, nil
}
func (r *stubMovementRepo) CountByProduct(context.Context, string) (int64, error) {
	return r.porProducto, nil
}
func (r *stubMovementRepo) CountByCustomer(context.Context, string) (int64, error) {
	return r.porCliente, nil
}

type stubCategoryRepo struct {
	categories map[string]*entity.Category
	productos  int64
	softDel    []string
	hardDel    []string
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: map[string]*entity.Category{}}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	return r.categories[id], nil
}

func (r *stubCategoryRepo) GetByNombre(_ context.Context, nombre string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Nombre == nombre {
			return c, nil
		}
	}
	return nil, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) List(context.Context, int, int) ([]*entity.Category, int, error) {
	return nil, 0, nil
}

func (r *stubCategoryRepo) CountProducts(context.Context, string) (int64, error) {
	return r.productos, nil
}

func (r *stubCategoryRepo) SoftDelete(_ context.Context, id string) error {
	r.softDel = append(r.softDel, id)
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	r.hardDel = append(r.hardDel, id)
	return nil
}

// stubNotifier cuenta los avisos despachados.
type stubNotifier struct {
	mu           sync.Mutex
	limites      int
	bienvenidas  int
	reportes     []repository.KindStats
	fallaReporte error
}

func (n *stubNotifier) StockBajo(context.Context, *entity.Product) error { return nil }
func (n *stubNotifier) LimiteAlcanzado(context.Context, *entity.Customer, decimal.Decimal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.limites++
	return nil
}
func (n *stubNotifier) MovimientoImportante(context.Context, *entity.Movement) error { return nil }
func (n *stubNotifier) BienvenidaCliente(context.Context, *entity.Customer) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bienvenidas++
	return nil
}

func (n *stubNotifier) ReporteDiario(_ context.Context, _ time.Time, stats []repository.KindStats) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fallaReporte != nil {
		return n.fallaReporte
	}
	n.reportes = append(n.reportes, stats...)
	return nil
}

func (n *stubNotifier) conteoLimites() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.limites
}

// ──────────────────────────────────────────────────────────────────────────────
// CustomerUseCase
// ──────────────────────────────────────────────────────────────────────────────

func clienteDePrueba(limite int64) *entity.Customer {
	return &entity.Customer{
		ID:            "cli-1",
		RUT:           "12345678-5",
		Nombre:        "María",
		Apellido:      "Soto",
		Email:         "maria.soto@example.cl",
		Departamento:  "Mantención",
		LimiteMensual: decimal.NewFromInt(limite),
		Estado:        entity.ClienteActivo,
	}
}

func TestCustomerCreate_RUTInvalidoRechazado(t *testing.T) {
	repo := newStubCustomerRepo()
	uc := NewCustomerUseCase(repo, &stubMovementRepo{}, &stubNotifier{}, logger.Nop())

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		RUT:          "12345678-0", // dígito verificador incorrecto
		Nombre:       "María",
		Apellido:     "Soto",
		Email:        "maria.soto@example.cl",
		Departamento: "Mantención",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRUT)
	assert.Empty(t, repo.customers, "no debe persistir un cliente con RUT inválido")
}

func TestCustomerUpdateLimit_DevuelveConsumoDelMes(t *testing.T) {
	repo := newStubCustomerRepo()
	cliente := clienteDePrueba(500_000)
	require.NoError(t, repo.Create(context.Background(), cliente))

	movRepo := &stubMovementRepo{consumo: decimal.NewFromInt(320_000)}
	notifier := &stubNotifier{}
	uc := NewCustomerUseCase(repo, movRepo, notifier, logger.Nop())

	out, err := uc.UpdateLimit(context.Background(), "cli-1", dto.UpdateLimitRequest{
		LimiteMensual: decimal.NewFromInt(400_000),
	})
	require.NoError(t, err)

	assert.True(t, out.LimiteAnterior.Equal(decimal.NewFromInt(500_000)))
	assert.True(t, out.LimiteNuevo.Equal(decimal.NewFromInt(400_000)))
	assert.True(t, out.ConsumoActual.Equal(decimal.NewFromInt(320_000)))
	assert.True(t, repo.customers["cli-1"].LimiteMensual.Equal(decimal.NewFromInt(400_000)))

	// La consulta de consumo parte en el día 1 del mes en curso.
	require.Len(t, movRepo.consultasMes, 1)
	desde := movRepo.consultasMes[0]
	assert.Equal(t, 1, desde.Day())
	assert.Equal(t, time.Now().Month(), desde.Month())

	// 320.000 < 400.000: sin aviso de límite alcanzado.
	assert.Equal(t, 0, notifier.conteoLimites())
}

func TestCustomerUpdateLimit_BajarElTopeBajoElConsumoAvisa(t *testing.T) {
	repo := newStubCustomerRepo()
	require.NoError(t, repo.Create(context.Background(), clienteDePrueba(500_000)))

	movRepo := &stubMovementRepo{consumo: decimal.NewFromInt(320_000)}
	notifier := &stubNotifier{}
	uc := NewCustomerUseCase(repo, movRepo, notifier, logger.Nop())

	out, err := uc.UpdateLimit(context.Background(), "cli-1", dto.UpdateLimitRequest{
		LimiteMensual: decimal.NewFromInt(300_000),
	})
	require.NoError(t, err)
	assert.True(t, out.ConsumoActual.Equal(decimal.NewFromInt(320_000)))

	assert.Eventually(t, func() bool {
		return notifier.conteoLimites() == 1
	}, time.Second, 10*time.Millisecond, "el consumo ya supera el tope nuevo, debe avisar")
}

func TestCustomerUpdateLimit_NegativoRechazado(t *testing.T) {
	repo := newStubCustomerRepo()
	require.NoError(t, repo.Create(context.Background(), clienteDePrueba(100_000)))
	uc := NewCustomerUseCase(repo, &stubMovementRepo{}, &stubNotifier{}, logger.Nop())

	_, err := uc.UpdateLimit(context.Background(), "cli-1", dto.UpdateLimitRequest{
		LimiteMensual: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, repo.customers["cli-1"].LimiteMensual.Equal(decimal.NewFromInt(100_000)),
		"el límite no debe cambiar")
}

func TestCustomerUpdateLimit_ClienteInexistente(t *testing.T) {
	uc := NewCustomerUseCase(newStubCustomerRepo(), &stubMovementRepo{}, &stubNotifier{}, logger.Nop())
	_, err := uc.UpdateLimit(context.Background(), "fantasma", dto.UpdateLimitRequest{
		LimiteMensual: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerDelete_ConMovimientosEsLogico(t *testing.T) {
	repo := newStubCustomerRepo()
	require.NoError(t, repo.Create(context.Background(), clienteDePrueba(0)))

	movRepo := &stubMovementRepo{porCliente: 3}
	uc := NewCustomerUseCase(repo, movRepo, &stubNotifier{}, logger.Nop())

	require.NoError(t, uc.Delete(context.Background(), "cli-1"))
	assert.Equal(t, []string{"cli-1"}, repo.softDel)
	assert.Empty(t, repo.hardDel, "con historia de movimientos solo se marca eliminado")
}

func TestCustomerDelete_SinMovimientosEsFisico(t *testing.T) {
	repo := newStubCustomerRepo()
	require.NoError(t, repo.Create(context.Background(), clienteDePrueba(0)))

	uc := NewCustomerUseCase(repo, &stubMovementRepo{porCliente: 0}, &stubNotifier{}, logger.Nop())

	require.NoError(t, uc.Delete(context.Background(), "cli-1"))
	assert.Empty(t, repo.softDel)
	assert.Equal(t, []string{"cli-1"}, repo.hardDel)
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementQueryUseCase: reporte diario
// ──────────────────────────────────────────────────────────────────────────────

func TestReporteDiario_EnviaResumenYDevuelveStats(t *testing.T) {
	movRepo := &stubMovementRepo{statsPorTipo: []repository.KindStats{
		{Tipo: entity.MovSalida, TotalMovimientos: 4, TotalProductos: 12, TotalValor: decimal.NewFromInt(45_000)},
	}}
	notifier := &stubNotifier{}
	uc := NewMovementQueryUseCase(movRepo, notifier)

	stats, err := uc.ReporteDiario(context.Background())
	require.NoError(t, err)

	// El correo lleva los agregados crudos del día.
	require.Len(t, notifier.reportes, 1)
	assert.Equal(t, entity.MovSalida, notifier.reportes[0].Tipo)
	assert.EqualValues(t, 4, notifier.reportes[0].TotalMovimientos)

	// La respuesta trae los cuatro tipos, en cero si no hubo movimientos.
	require.Len(t, stats, 4)
	assert.EqualValues(t, 4, stats[entity.MovSalida].Movimientos)
	assert.True(t, stats[entity.MovSalida].Valor.Equal(decimal.NewFromInt(45_000)))
	assert.EqualValues(t, 0, stats[entity.MovEntrada].Movimientos)
}

func TestReporteDiario_FalloDeCorreoFallaLaOperacion(t *testing.T) {
	notifier := &stubNotifier{fallaReporte: errors.New("smtp caído")}
	uc := NewMovementQueryUseCase(&stubMovementRepo{}, notifier)

	_, err := uc.ReporteDiario(context.Background())
	assert.Error(t, err, "si el correo no sale, el reporte diario no se da por hecho")
}

// ──────────────────────────────────────────────────────────────────────────────
// CategoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	repo := newStubCategoryRepo()
	uc := NewCategoryUseCase(repo)

	_, err := uc.Create(context.Background(), dto.CategoryRequest{Nombre: "Ferretería"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CategoryRequest{Nombre: "Ferretería"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryDelete_ConProductosFalla(t *testing.T) {
	repo := newStubCategoryRepo()
	uc := NewCategoryUseCase(repo)

	cat, err := uc.Create(context.Background(), dto.CategoryRequest{Nombre: "Eléctricos"})
	require.NoError(t, err)

	repo.productos = 7
	err = uc.Delete(context.Background(), cat.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	assert.Empty(t, repo.hardDel)
}

func TestCategoryDelete_SinProductosElimina(t *testing.T) {
	repo := newStubCategoryRepo()
	uc := NewCategoryUseCase(repo)

	cat, err := uc.Create(context.Background(), dto.CategoryRequest{Nombre: "Aseo"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), cat.ID))
	assert.Equal(t, []string{cat.ID}, repo.hardDel)
}
