package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"maptool/internal/maptool/models"
)

// ============================================================
// Generation parameters
// ============================================================

// LoadParams читает параметры генерации из YAML. Отсутствующие ключи
// сохраняют значения по умолчанию. Пустой путь дает значения по умолчанию.
func LoadParams(path string) (models.Params, error) {
	p := models.DefaultParams()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read params: %w", err)
	}
	return ParseParams(data)
}

func ParseParams(data []byte) (models.Params, error) {
	p := models.DefaultParams()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse params: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("params: %w", err)
	}
	return p, nil
}

// WriteParams сохраняет параметры в YAML.
func WriteParams(path string, p models.Params) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
