package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/panol-app/bodega-api/pkg/config"
	"github.com/panol-app/bodega-api/pkg/logger"
)

// Sweeper borra periódicamente los archivos de uploads/temp más viejos que
// TempMaxAge (uploads de movimientos que nunca confirmaron).
type Sweeper struct {
	cfg config.UploadsConfig
	log *logger.Logger
}

// NewSweeper construye el barrido.
func NewSweeper(cfg config.UploadsConfig, log *logger.Logger) *Sweeper {
	return &Sweeper{cfg: cfg, log: log}
}

// Run ejecuta el barrido cada SweepPeriod hasta que el contexto se cancele.
// Pensado para correr en su propia goroutine desde main.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	dir := filepath.Join(s.cfg.Dir, "temp")
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn().Err(err).Str("dir", dir).Msg("barrido de temporales falló al listar")
		return
	}

	corte := time.Now().Add(-s.cfg.TempMaxAge)
	borrados := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(corte) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			s.log.Warn().Err(err).Str("archivo", e.Name()).Msg("no se pudo borrar temporal")
			continue
		}
		borrados++
	}
	if borrados > 0 {
		s.log.Info().Int("borrados", borrados).Msg("temporales huérfanos eliminados")
	}
}
