package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"art-returns/internal/api/models"
	"art-returns/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PresetHandler serves assumption presets stored as YAML files
type PresetHandler struct {
	presetDir string
	log       *zap.Logger
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(dir string, log *zap.Logger) *PresetHandler {
	if dir == "" {
		dir = "./examples/presets"
	}
	// Convert to absolute path for reliability
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	log.Info("using preset directory", zap.String("dir", dir))

	return &PresetHandler{
		presetDir: dir,
		log:       log,
	}
}

// Dir returns the preset directory path
func (h *PresetHandler) Dir() string {
	return h.presetDir
}

// Load reads a preset by id (its file name without extension).
func (h *PresetHandler) Load(id string) (*config.PresetFile, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, fmt.Errorf("invalid preset id %q", id)
	}
	p, err := config.LoadPreset(filepath.Join(h.presetDir, id+".yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("preset %q not found", id)
		}
		return nil, err
	}
	return p, nil
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.presetDir)
	if err != nil {
		h.log.Warn("failed to read preset directory",
			zap.String("dir", h.presetDir),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".yaml")
		p, err := h.Load(id)
		if err != nil {
			h.log.Warn("skipping preset", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		name := p.Name
		if name == "" {
			name = id
		}
		presets = append(presets, models.PresetInfo{
			ID:          id,
			Name:        name,
			Description: p.Description,
			File:        filepath.Join(h.presetDir, entry.Name()),
			Rows:        len(p.Assumptions),
		})
	}

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}
