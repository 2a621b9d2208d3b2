package http_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panol-app/bodega-api/internal/application/ledger"
	"github.com/panol-app/bodega-api/internal/domain/repository"
	"github.com/panol-app/bodega-api/internal/infrastructure/storage"
	apphttp "github.com/panol-app/bodega-api/internal/interfaces/http"
	"github.com/panol-app/bodega-api/pkg/config"
	"github.com/panol-app/bodega-api/pkg/logger"
)

// failTxRunner aborta toda transacción sin ejecutarla, como si la BD
// rechazara el commit.
type failTxRunner struct {
	err error
}

func (r failTxRunner) Run(_ context.Context, _ func(
	repository.MovementRepository,
	repository.ProductRepository,
	repository.CustomerRepository,
) error) error {
	return r.err
}

// buildRegisterApp monta solo la ruta de registro, con un usuario autenticado
// fijo y un store real sobre un directorio temporal.
func buildRegisterApp(t *testing.T, tx ledger.TxRunner) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewStore(config.UploadsConfig{
		Dir:         dir,
		MaxSize:     1 << 20,
		TempMaxAge:  time.Hour,
		SweepPeriod: time.Hour,
	})
	require.NoError(t, err)

	registerUC := ledger.NewRegisterMovementUseCase(tx, nil, nil, logger.Nop())
	handler := apphttp.NewMovementHandler(registerUC, nil, nil, nil, store)

	app := fiber.New()
	app.Post("/api/movimientos",
		func(c *fiber.Ctx) error {
			c.Locals(apphttp.LocalUserID, "00000000-0000-4000-8000-000000000009")
			c.Locals(apphttp.LocalRole, "operador")
			return c.Next()
		},
		handler.Register,
	)
	return app, dir
}

// multipartSalida arma un POST multipart con un adjunto PDF.
func multipartSalida(t *testing.T, nombreArchivo string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("tipo", "salida"))
	require.NoError(t, w.WriteField("producto_id", "9b2b7a08-77a1-4c55-8ad4-3c0ce9a1fd2f"))
	require.NoError(t, w.WriteField("cantidad", "5"))
	fw, err := w.CreateFormFile("archivo", nombreArchivo)
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 guia de despacho"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/movimientos", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// contarArchivos cuenta los archivos regulares bajo el directorio de uploads.
func contarArchivos(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

// Si la transacción falla, el adjunto ya promovido se borra: nunca queda un
// archivo huérfano ni un movimiento apuntando a un archivo inexistente.
func TestRegister_TransaccionFallidaLimpiaElAdjunto(t *testing.T) {
	app, dir := buildRegisterApp(t, failTxRunner{err: errors.New("commit rechazado")})

	resp, err := app.Test(multipartSalida(t, "guia.pdf"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 0, contarArchivos(t, dir),
		"con la transacción abortada no debe quedar ningún archivo en uploads")
}

// Extensión no permitida: la request se rechaza antes de tocar la BD y no
// queda nada en disco.
func TestRegister_ExtensionNoPermitida(t *testing.T) {
	app, dir := buildRegisterApp(t, failTxRunner{err: errors.New("no debe llegar a la BD")})

	resp, err := app.Test(multipartSalida(t, "payload.exe"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, contarArchivos(t, dir))
}
