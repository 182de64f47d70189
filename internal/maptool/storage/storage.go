package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"maptool/internal/maptool/models"
)

// ============================================================
// File Storage
// ============================================================

const (
	mapFile = "map.json"
	svgFile = "map.svg"
)

// FileStorage раскладывает экспорт карт по каталогам <root>/<id>/.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) Root() string {
	return s.root
}

func (s *FileStorage) MapDir(id string) string {
	return filepath.Join(s.root, id)
}

func (s *FileStorage) JSONPath(id string) string {
	return filepath.Join(s.MapDir(id), mapFile)
}

func (s *FileStorage) SVGPath(id string) string {
	return filepath.Join(s.MapDir(id), svgFile)
}

func (s *FileStorage) EnsureDir(id string) error {
	if err := os.MkdirAll(s.MapDir(id), 0o755); err != nil {
		return fmt.Errorf("mkdir map dir: %w", err)
	}
	return nil
}

// WriteMap сохраняет документ карты в map.json.
func (s *FileStorage) WriteMap(m *models.Map) (string, error) {
	if m.ID == "" {
		return "", fmt.Errorf("map has no id")
	}
	if err := s.EnsureDir(m.ID); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal map: %w", err)
	}
	path := s.JSONPath(m.ID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write map: %w", err)
	}
	return path, nil
}

func (s *FileStorage) WriteSVG(id, svg string) (string, error) {
	if err := s.EnsureDir(id); err != nil {
		return "", err
	}
	path := s.SVGPath(id)
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return "", fmt.Errorf("write svg: %w", err)
	}
	return path, nil
}

// ReadMap читает map.json карты id.
func (s *FileStorage) ReadMap(id string) (*models.Map, error) {
	return ReadMapFile(s.JSONPath(id))
}

func (s *FileStorage) ReadSVG(id string) ([]byte, error) {
	return os.ReadFile(s.SVGPath(id))
}

// Remove удаляет каталог карты вместе с содержимым.
func (s *FileStorage) Remove(id string) error {
	if id == "" {
		return fmt.Errorf("empty map id")
	}
	return os.RemoveAll(s.MapDir(id))
}

// ReadMapFile читает документ карты из произвольного файла.
func ReadMapFile(path string) (*models.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m models.Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &m, nil
}
