package usecase

import (
	"context"

	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// discardImage deletes a stored image after the row change it belonged to has been settled.
// Failures are logged, not returned.
func discardImage(ctx context.Context, images ports.ImageStore, log *logger.Logger, url string) {
	if url == "" {
		return
	}
	if err := images.Delete(ctx, url); err != nil {
		log.Warn().Err(err).Str("image", url).Msg("delete stored image")
	}
}
