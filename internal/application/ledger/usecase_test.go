package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/domain/repository"
	"github.com/panol-app/bodega-api/pkg/logger"
)

// --- fakes en memoria -------------------------------------------------------

type memState struct {
	products  map[string]*entity.Product
	movements map[string]*entity.Movement
	customers map[string]*entity.Customer
}

func newMemState() *memState {
	return &memState{
		products:  map[string]*entity.Product{},
		movements: map[string]*entity.Movement{},
		customers: map[string]*entity.Customer{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, m := range s.movements {
		cm := *m
		c.movements[id] = &cm
	}
	for id, cl := range s.customers {
		cc := *cl
		c.customers[id] = &cc
	}
	return c
}

// memStore simula la BD: Run trabaja sobre una copia y solo la publica si fn
// no falla, reproduciendo la semántica commit/rollback del TxRunner real.
type memStore struct {
	mu         sync.Mutex
	state      *memState
	failCreate error // si se setea, MovementRepository.Create falla
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (s *memStore) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	err := fn(
		&memMovementRepo{s: work, failCreate: s.failCreate},
		&memProductRepo{s: work},
		&memCustomerRepo{s: work},
	)
	if err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *memStore) product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *s.state.products[id]
	return &p
}

func (s *memStore) movement(id string) *entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.state.movements[id]
	if !ok {
		return nil
	}
	cm := *m
	return &cm
}

func (s *memStore) seedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.state.products[p.ID] = &cp
}

func (s *memStore) seedCustomer(c *entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cc := *c
	s.state.customers[c.ID] = &cc
}

func (s *memStore) seedMovement(m *entity.Movement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm := *m
	s.state.movements[m.ID] = &cm
}

type memMovementRepo struct {
	s          *memState
	failCreate error
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cm := *m
	r.s.movements[m.ID] = &cm
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cm := *m
	return &cm, nil
}

func (r *memMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.Movement, int, error) {
	out := make([]*entity.Movement, 0, len(r.s.movements))
	for _, m := range r.s.movements {
		cm := *m
		out = append(out, &cm)
	}
	return out, len(out), nil
}

func (r *memMovementRepo) MarkVoided(_ context.Context, id, motivo string) error {
	m, ok := r.s.movements[id]
	if !ok {
		return domain.ErrMovementNotFound
	}
	m.Estado = entity.MovAnulado
	m.Motivo = motivo
	return nil
}

func (r *memMovementRepo) MonthlyConsumption(_ context.Context, clienteID string, desde time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.s.movements {
		if m.Tipo == entity.MovSalida && m.Estado == entity.MovCompletado &&
			m.ClienteID == clienteID && !m.CreatedAt.Before(desde) {
			total = total.Add(m.Total)
		}
	}
	return total, nil
}

func (r *memMovementRepo) StatsByKind(_ context.Context, _, _ time.Time) ([]repository.KindStats, error) {
	return nil, nil
}

func (r *memMovementRepo) CountByProduct(_ context.Context, productoID string) (int64, error) {
	var n int64
	for _, m := range r.s.movements {
		if m.ProductoID == productoID {
			n++
		}
	}
	return n, nil
}

func (r *memMovementRepo) CountByCustomer(_ context.Context, clienteID string) (int64, error) {
	var n int64
	for _, m := range r.s.movements {
		if m.ClienteID == clienteID {
			n++
		}
	}
	return n, nil
}

type memProductRepo struct{ s *memState }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, stock int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = stock
	return nil
}

func (r *memProductRepo) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}

func (r *memProductRepo) SoftDelete(_ context.Context, id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.s.products, id)
	return nil
}

type memCustomerRepo struct{ s *memState }

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	cc := *c
	r.s.customers[c.ID] = &cc
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memCustomerRepo) GetByRUT(_ context.Context, _ string) (*entity.Customer, error) {
	return nil, nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	cc := *c
	r.s.customers[c.ID] = &cc
	return nil
}

func (r *memCustomerRepo) List(_ context.Context, _ repository.CustomerFilter) ([]*entity.Customer, int, error) {
	return nil, 0, nil
}

func (r *memCustomerRepo) SoftDelete(_ context.Context, id string) error {
	delete(r.s.customers, id)
	return nil
}

func (r *memCustomerRepo) Delete(_ context.Context, id string) error {
	delete(r.s.customers, id)
	return nil
}

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *memSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *memSupplierRepo) GetByRUT(_ context.Context, _ string) (*entity.Supplier, error) {
	return nil, nil
}

func (r *memSupplierRepo) Update(_ context.Context, _ *entity.Supplier) error { return nil }

func (r *memSupplierRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Supplier, int, error) {
	return nil, 0, nil
}

func (r *memSupplierRepo) SoftDelete(_ context.Context, _ string) error { return nil }
func (r *memSupplierRepo) Delete(_ context.Context, _ string) error     { return nil }

// recordNotifier registra cada aviso despachado para verificarlo en tests.
type recordNotifier struct {
	mu          sync.Mutex
	stockBajo   []string // IDs de producto
	limites     []string // IDs de cliente
	importantes []string // IDs de movimiento
	bienvenidas []string // IDs de cliente
}

func (n *recordNotifier) StockBajo(_ context.Context, p *entity.Product) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stockBajo = append(n.stockBajo, p.ID)
	return nil
}

func (n *recordNotifier) LimiteAlcanzado(_ context.Context, c *entity.Customer, _ decimal.Decimal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.limites = append(n.limites, c.ID)
	return nil
}

func (n *recordNotifier) MovimientoImportante(_ context.Context, m *entity.Movement) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.importantes = append(n.importantes, m.ID)
	return nil
}

func (n *recordNotifier) BienvenidaCliente(_ context.Context, c *entity.Customer) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bienvenidas = append(n.bienvenidas, c.ID)
	return nil
}

func (n *recordNotifier) ReporteDiario(_ context.Context, _ time.Time, _ []repository.KindStats) error {
	return nil
}

func (n *recordNotifier) stockBajoCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stockBajo)
}

func (n *recordNotifier) limiteCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.limites)
}

func (n *recordNotifier) importanteCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.importantes)
}

// --- helpers ----------------------------------------------------------------

func productoTornillos(stock int64) *entity.Product {
	return &entity.Product{
		ID:           "prod-1",
		Codigo:       "TOR-001",
		Nombre:       "Tornillos 3mm",
		PrecioCompra: decimal.NewFromInt(50),
		PrecioVenta:  decimal.NewFromInt(100),
		Stock:        stock,
		StockMinimo:  20,
		Estado:       entity.ProductActivo,
	}
}

func clienteConLimite(limite int64) *entity.Customer {
	return &entity.Customer{
		ID:            "cli-1",
		RUT:           "12345678-5",
		Nombre:        "María",
		Apellido:      "Soto",
		Email:         "maria.soto@municipio.cl",
		Departamento:  "Aseo y Ornato",
		LimiteMensual: decimal.NewFromInt(limite),
		Estado:        entity.ClienteActivo,
	}
}

func newRegisterUC(store *memStore, notifier Notifier) *RegisterMovementUseCase {
	return NewRegisterMovementUseCase(store, &memSupplierRepo{suppliers: map[string]*entity.Supplier{}}, notifier, logger.Nop())
}

func newVoidUC(store *memStore, notifier Notifier) *VoidMovementUseCase {
	return NewVoidMovementUseCase(store, notifier, logger.Nop())
}

// --- RegisterMovement -------------------------------------------------------

func TestRegisterMovement_SalidaDescuentaStock(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(100))
	notifier := &recordNotifier{}
	uc := newRegisterUC(store, notifier)

	mov, err := uc.RegisterMovement(context.Background(), MovementInput{
		Tipo:           entity.MovSalida,
		ProductoID:     "prod-1",
		Cantidad:       85,
		PrecioUnitario: decimal.NewFromInt(100),
		Motivo:         "Entrega a cuadrilla",
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(100), mov.StockAnterior)
	assert.Equal(t, int64(15), mov.StockNuevo)
	assert.Equal(t, entity.MovCompletado, mov.Estado)
	assert.True(t, mov.Total.Equal(decimal.NewFromInt(8500)))
	assert.True(t, strings.HasPrefix(mov.NumeroDocumento, "SAL-"))

	assert.Equal(t, int64(15), store.product("prod-1").Stock)

	// 15 <= mínimo 20: debe salir el aviso de stock bajo tras el commit.
	assert.Eventually(t, func() bool { return notifier.stockBajoCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestRegisterMovement_SalidaSinStockSuficiente(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(15))
	uc := newRegisterUC(store, &recordNotifier{})

	_, err := uc.RegisterMovement(context.Background(), MovementInput{
		Tipo:           entity.MovSalida,
		ProductoID:     "prod-1",
		Cantidad:       16,
		PrecioUnitario: decimal.NewFromInt(100),
	}, "user-1")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(15), stockErr.Disponible)
	assert.Equal(t, int64(16), stockErr.Solicitado)

	// Nada se persistió.
	assert.Equal(t, int64(15), store.product("prod-1").Stock)
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(15))
	uc := newRegisterUC(store, &recordNotifier{})

	mov, err := uc.RegisterMovement(context.Background(), MovementInput{
		Tipo:           entity.MovEntrada,
		ProductoID:     "prod-1",
		Cantidad:       10,
		PrecioUnitario: decimal.NewFromInt(50),
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(15), mov.StockAnterior)
	assert.Equal(t, int64(25), mov.StockNuevo)
	assert.True(t, strings.HasPrefix(mov.NumeroDocumento, "ENT-"))
	assert.Equal(t, int64(25), store.product("prod-1").Stock)
}

func TestRegisterMovement_AjusteFijaStockAbsoluto(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(80))
	uc := newRegisterUC(store, &recordNotifier{})

	mov, err := uc.RegisterMovement(context.Background(), MovementInput{
		Tipo:           entity.MovAjuste,
		ProductoID:     "prod-1",
		Cantidad:       50,
		PrecioUnitario: decimal.NewFromInt(50),
		Motivo:         "Recuento físico",
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(80), mov.StockAnterior)
	assert.Equal(t, int64(50), mov.StockNuevo)
	assert.Equal(t, int64(50), store.product("prod-1").Stock)
}

func TestRegisterMovement_LimiteMensual(t *testing.T) {
	// Cliente con tope 500.000 y 450.000 ya consumidos este mes. Una salida
	// del mes pasado no cuenta para la ventana.
	now := time.Now()
	seed := func() (*memStore, *recordNotifier, *RegisterMovementUseCase) {
		store := newMemStore()
		store.seedProduct(productoTornillos(1000))
		store.seedCustomer(clienteConLimite(500_000))
		store.seedMovement(&entity.Movement{
			ID: "mov-old", Tipo: entity.MovSalida, ProductoID: "prod-1",
			ClienteID: "cli-1", Cantidad: 9,
			Total:  decimal.NewFromInt(450_000),
			Estado: entity.MovCompletado, CreatedAt: MonthStart(now),
		})
		store.seedMovement(&entity.Movement{
			ID: "mov-prev", Tipo: entity.MovSalida, ProductoID: "prod-1",
			ClienteID: "cli-1", Cantidad: 4,
			Total:  decimal.NewFromInt(200_000),
			Estado: entity.MovCompletado, CreatedAt: MonthStart(now).Add(-time.Hour),
		})
		notifier := &recordNotifier{}
		return store, notifier, newRegisterUC(store, notifier)
	}

	t.Run("salida que toca el tope se acepta y avisa", func(t *testing.T) {
		_, notifier, uc := seed()
		mov, err := uc.RegisterMovement(context.Background(), MovementInput{
			Tipo:           entity.MovSalida,
			ProductoID:     "prod-1",
			ClienteID:      "cli-1",
			Cantidad:       1,
			PrecioUnitario: decimal.NewFromInt(50_000),
		}, "user-1")

		require.NoError(t, err)
		assert.Equal(t, entity.MovCompletado, mov.Estado)
		assert.Eventually(t, func() bool { return notifier.limiteCount() == 1 },
			time.Second, 10*time.Millisecond)
	})

	t.Run("salida que supera el tope se rechaza", func(t *testing.T) {
		store, _, uc := seed()
		_, err := uc.RegisterMovement(context.Background(), MovementInput{
			Tipo:           entity.MovSalida,
			ProductoID:     "prod-1",
			ClienteID:      "cli-1",
			Cantidad:       1,
			PrecioUnitario: decimal.NewFromInt(50_001),
		}, "user-1")

		require.ErrorIs(t, err, domain.ErrMonthlyLimitExceeded)
		var limErr *domain.LimitError
		require.ErrorAs(t, err, &limErr)
		assert.True(t, limErr.Consumido.Equal(decimal.NewFromInt(450_000)))
		assert.Equal(t, int64(1000), store.product("prod-1").Stock)
	})
}

func TestRegisterMovement_LimiteCeroEsIlimitado(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(1000))
	store.seedCustomer(clienteConLimite(0))
	notifier := &recordNotifier{}
	uc := newRegisterUC(store, notifier)

	mov, err := uc.RegisterMovement(context.Background(), MovementInput{
		Tipo:           entity.MovSalida,
		ProductoID:     "prod-1",
		ClienteID:      "cli-1",
		Cantidad:       10,
		PrecioUnitario: decimal.NewFromInt(9_999_999),
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, entity.MovCompletado, mov.Estado)
	// Sin tope no hay aviso de límite, pero el monto sí dispara el aviso de
	// movimiento importante.
	assert.Eventually(t, func() bool { return notifier.importanteCount() == 1 },
		time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, notifier.limiteCount())
}

func TestRegisterMovement_ValidacionesPrevias(t *testing.T) {
	store := newMemStore()
	inactivo := productoTornillos(100)
	inactivo.ID = "prod-inactivo"
	inactivo.Estado = entity.ProductInactivo
	store.seedProduct(productoTornillos(100))
	store.seedProduct(inactivo)
	bloqueado := clienteConLimite(0)
	bloqueado.ID = "cli-bloqueado"
	bloqueado.Estado = entity.ClienteBloqueado
	store.seedCustomer(bloqueado)
	uc := newRegisterUC(store, &recordNotifier{})
	ctx := context.Background()
	precio := decimal.NewFromInt(100)

	casos := []struct {
		nombre string
		input  MovementInput
		want   error
	}{
		{"tipo desconocido", MovementInput{Tipo: "prestamo", ProductoID: "prod-1", Cantidad: 1, PrecioUnitario: precio}, domain.ErrInvalidInput},
		{"cantidad cero", MovementInput{Tipo: entity.MovEntrada, ProductoID: "prod-1", Cantidad: 0, PrecioUnitario: precio}, domain.ErrInvalidInput},
		{"producto inexistente", MovementInput{Tipo: entity.MovEntrada, ProductoID: "prod-x", Cantidad: 1, PrecioUnitario: precio}, domain.ErrProductNotFound},
		{"producto inactivo", MovementInput{Tipo: entity.MovEntrada, ProductoID: "prod-inactivo", Cantidad: 1, PrecioUnitario: precio}, domain.ErrProductInactive},
		{"proveedor inexistente", MovementInput{Tipo: entity.MovEntrada, ProductoID: "prod-1", ProveedorID: "prov-x", Cantidad: 1, PrecioUnitario: precio}, domain.ErrSupplierNotFound},
		{"cliente inexistente", MovementInput{Tipo: entity.MovSalida, ProductoID: "prod-1", ClienteID: "cli-x", Cantidad: 1, PrecioUnitario: precio}, domain.ErrCustomerNotFound},
		{"cliente bloqueado", MovementInput{Tipo: entity.MovSalida, ProductoID: "prod-1", ClienteID: "cli-bloqueado", Cantidad: 1, PrecioUnitario: precio}, domain.ErrCustomerInactive},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, c.input, "user-1")
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestRegisterMovement_FalloRevierteTodo(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(100))
	store.failCreate = errors.New("insert falló")
	uc := newRegisterUC(store, &recordNotifier{})

	_, err := uc.RegisterMovement(context.Background(), MovementInput{
		Tipo:           entity.MovSalida,
		ProductoID:     "prod-1",
		Cantidad:       10,
		PrecioUnitario: decimal.NewFromInt(100),
	}, "user-1")

	require.Error(t, err)
	assert.Equal(t, int64(100), store.product("prod-1").Stock)
	store.mu.Lock()
	assert.Empty(t, store.state.movements)
	store.mu.Unlock()
}

// --- VoidMovement -----------------------------------------------------------

func TestVoidMovement_SalidaSeCompensaConEntrada(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(100))
	notifier := &recordNotifier{}
	regUC := newRegisterUC(store, notifier)
	voidUC := newVoidUC(store, notifier)
	ctx := context.Background()

	salida, err := regUC.RegisterMovement(ctx, MovementInput{
		Tipo:           entity.MovSalida,
		ProductoID:     "prod-1",
		Cantidad:       85,
		PrecioUnitario: decimal.NewFromInt(100),
	}, "user-1")
	require.NoError(t, err)

	_, err = regUC.RegisterMovement(ctx, MovementInput{
		Tipo:           entity.MovEntrada,
		ProductoID:     "prod-1",
		Cantidad:       10,
		PrecioUnitario: decimal.NewFromInt(50),
	}, "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(25), store.product("prod-1").Stock)

	anulado, comp, err := voidUC.VoidMovement(ctx, salida.ID, "salida duplicada", "user-2")
	require.NoError(t, err)

	assert.Equal(t, entity.MovAnulado, anulado.Estado)
	assert.Equal(t, entity.MovEntrada, comp.Tipo)
	assert.Equal(t, int64(85), comp.Cantidad)
	assert.Equal(t, int64(25), comp.StockAnterior)
	assert.Equal(t, int64(110), comp.StockNuevo)
	assert.Equal(t, "ANUL-"+salida.NumeroDocumento, comp.NumeroDocumento)
	assert.Equal(t, "Anulación: salida duplicada", comp.Motivo)
	assert.True(t, comp.Total.Equal(salida.Total))

	assert.Equal(t, int64(110), store.product("prod-1").Stock)
	assert.Equal(t, entity.MovAnulado, store.movement(salida.ID).Estado)
	assert.Equal(t, entity.MovCompletado, store.movement(comp.ID).Estado)
}

func TestVoidMovement_AjusteRestauraStockAnterior(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(30))
	notifier := &recordNotifier{}
	regUC := newRegisterUC(store, notifier)
	voidUC := newVoidUC(store, notifier)
	ctx := context.Background()

	ajuste, err := regUC.RegisterMovement(ctx, MovementInput{
		Tipo:           entity.MovAjuste,
		ProductoID:     "prod-1",
		Cantidad:       500,
		PrecioUnitario: decimal.NewFromInt(50),
		Motivo:         "Recuento erróneo",
	}, "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(500), store.product("prod-1").Stock)

	_, comp, err := voidUC.VoidMovement(ctx, ajuste.ID, "recuento mal hecho", "user-1")
	require.NoError(t, err)

	// La compensación de un ajuste es otro ajuste al stock previo al original.
	assert.Equal(t, entity.MovAjuste, comp.Tipo)
	assert.Equal(t, int64(30), comp.Cantidad)
	assert.Equal(t, int64(30), comp.StockNuevo)
	assert.Equal(t, int64(30), store.product("prod-1").Stock)
}

func TestVoidMovement_DobleAnulacionFalla(t *testing.T) {
	store := newMemStore()
	store.seedProduct(productoTornillos(100))
	notifier := &recordNotifier{}
	regUC := newRegisterUC(store, notifier)
	voidUC := newVoidUC(store, notifier)
	ctx := context.Background()

	mov, err := regUC.RegisterMovement(ctx, MovementInput{
		Tipo:           entity.MovEntrada,
		ProductoID:     "prod-1",
		Cantidad:       10,
		PrecioUnitario: decimal.NewFromInt(50),
	}, "user-1")
	require.NoError(t, err)

	_, _, err = voidUC.VoidMovement(ctx, mov.ID, "error de digitación", "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(100), store.product("prod-1").Stock)

	_, _, err = voidUC.VoidMovement(ctx, mov.ID, "otra vez", "user-1")
	assert.ErrorIs(t, err, domain.ErrMovementVoided)
	// El stock no se tocó de nuevo.
	assert.Equal(t, int64(100), store.product("prod-1").Stock)
}

func TestVoidMovement_MovimientoInexistente(t *testing.T) {
	store := newMemStore()
	voidUC := newVoidUC(store, &recordNotifier{})

	_, _, err := voidUC.VoidMovement(context.Background(), "mov-x", "motivo", "user-1")
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

func TestVoidMovement_EntradaSinStockParaRevertir(t *testing.T) {
	// Anular una entrada exige descontar su cantidad. Si el stock actual no
	// alcanza (ya se consumió), la anulación se rechaza.
	store := newMemStore()
	store.seedProduct(productoTornillos(100))
	notifier := &recordNotifier{}
	regUC := newRegisterUC(store, notifier)
	voidUC := newVoidUC(store, notifier)
	ctx := context.Background()

	entrada, err := regUC.RegisterMovement(ctx, MovementInput{
		Tipo:           entity.MovEntrada,
		ProductoID:     "prod-1",
		Cantidad:       50,
		PrecioUnitario: decimal.NewFromInt(50),
	}, "user-1")
	require.NoError(t, err)

	_, err = regUC.RegisterMovement(ctx, MovementInput{
		Tipo:           entity.MovSalida,
		ProductoID:     "prod-1",
		Cantidad:       120,
		PrecioUnitario: decimal.NewFromInt(100),
	}, "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(30), store.product("prod-1").Stock)

	_, _, err = voidUC.VoidMovement(ctx, entrada.ID, "entrada duplicada", "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(30), store.product("prod-1").Stock)
	assert.Equal(t, entity.MovCompletado, store.movement(entrada.ID).Estado)
}

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("CLT", -4*3600)
	ts := time.Date(2025, time.March, 17, 13, 45, 12, 0, loc)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, loc), MonthStart(ts))
}
