// Package storage maneja los archivos adjuntos de movimientos en disco
// local: los uploads entran primero a un directorio temporal y se mueven a
// documentos/ solo cuando el movimiento confirma. Un barrido horario limpia
// los temporales huérfanos de movimientos que terminaron en rollback.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/panol-app/bodega-api/internal/domain"
	"github.com/panol-app/bodega-api/pkg/config"
	"github.com/panol-app/bodega-api/pkg/slug"
)

// Extensiones permitidas para adjuntos (guías, facturas, fotos).
var allowedExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".xlsx": true,
	".xls":  true,
}

// Store guarda y mueve archivos adjuntos bajo el directorio de uploads.
type Store struct {
	cfg config.UploadsConfig
}

// NewStore crea el store y asegura los subdirectorios.
func NewStore(cfg config.UploadsConfig) (*Store, error) {
	for _, dir := range []string{cfg.Dir, filepath.Join(cfg.Dir, "temp"), filepath.Join(cfg.Dir, "documentos")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio %s: %w", dir, err)
		}
	}
	return &Store{cfg: cfg}, nil
}

// SaveTemp guarda el upload en temp/ y devuelve la ruta relativa dentro del
// directorio de uploads. Valida extensión y tamaño.
func (s *Store) SaveTemp(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", fmt.Errorf("%w: extensión %q no permitida", domain.ErrInvalidInput, ext)
	}
	if fh.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: archivo supera el máximo de %d bytes", domain.ErrInvalidInput, s.cfg.MaxSize)
	}

	base := strings.TrimSuffix(filepath.Base(fh.Filename), ext)
	nombre := fmt.Sprintf("%s-%s%s", uuid.New().String()[:8], slug.Make(base), ext)
	rel := filepath.Join("temp", nombre)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("abrir upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.cfg.Dir, rel))
	if err != nil {
		return "", fmt.Errorf("crear archivo temporal: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("copiar upload: %w", err)
	}
	return rel, nil
}

// Promote mueve un archivo de temp/ a documentos/ y devuelve la ruta
// relativa definitiva. Se llama después del commit del movimiento.
func (s *Store) Promote(relTemp string) (string, error) {
	nombre := filepath.Base(relTemp)
	relFinal := filepath.Join("documentos", nombre)
	if err := os.Rename(filepath.Join(s.cfg.Dir, relTemp), filepath.Join(s.cfg.Dir, relFinal)); err != nil {
		return "", fmt.Errorf("mover adjunto: %w", err)
	}
	return relFinal, nil
}

// Remove borra un archivo relativo al directorio de uploads. Ignora si ya
// no existe.
func (s *Store) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.cfg.Dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar adjunto: %w", err)
	}
	return nil
}

// Abs devuelve la ruta absoluta de un adjunto (para servirlo).
func (s *Store) Abs(rel string) string {
	return filepath.Join(s.cfg.Dir, rel)
}
