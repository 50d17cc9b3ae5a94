package handlers

import (
	"github.com/sirupsen/logrus"

	"vidnote/client/internal/store"
)

// ApplicationHandler holds shared dependencies for handlers. All state of
// record lives in the store; handlers only translate HTTP into store
// operations and render the results.
type ApplicationHandler struct {
	Store  *store.Store
	Logger *logrus.Logger
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(videoStore *store.Store, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Store:  videoStore,
		Logger: logger,
	}
}
