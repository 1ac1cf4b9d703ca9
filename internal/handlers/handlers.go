package handlers

import (
	"go.uber.org/zap"

	"github.com/stocklane/backoffice-golang/internal/catalog"
)

// Handlers struct holds all dependencies for our handlers.
// The engine owns the database pool.
type Handlers struct {
	Engine *catalog.Engine
	Log    *zap.Logger
}
