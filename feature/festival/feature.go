package festival

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the festival read API into the loader.
type Feature struct {
	db      *gorm.DB
	handler *Handler
}

// NewFeature creates the festival feature.
func NewFeature(db *gorm.DB, log *zap.Logger) *Feature {
	return &Feature{
		db:      db,
		handler: NewHandler(NewService(db, log)),
	}
}

// Name returns the feature identifier.
func (f *Feature) Name() string {
	return "festival"
}

// IsEnabled reports whether the feature can serve; it needs a database.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load mounts the festival routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
