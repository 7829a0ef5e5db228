package handlers

import (
	"io"

	"github.com/badhouseplants/shoebill/internal/config"
	"github.com/badhouseplants/shoebill/internal/manifests"
)

// Manifests writes the installation manifests to w.
func Manifests(w io.Writer, cfg config.Manifests) error {
	return manifests.Write(w, cfg)
}
