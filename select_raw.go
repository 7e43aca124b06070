//go:build !assets

package hostplatform

import (
	"go.uber.org/zap"

	"github.com/wippyai/hostplatform/files"
)

// AssetMode reports whether reads are served from a packaged archive.
// Build with -tags assets to select the asset backend.
const AssetMode = false

func (p *Platform) selectBackend() (files.Backend, error) {
	if p.archive != nil {
		p.logger.Warn("asset archive ignored by raw filesystem build", zap.Bool("asset_mode", AssetMode))
	}
	return files.NewRawBackend(), nil
}
