//go:build assets

package hostplatform

import (
	perrors "github.com/wippyai/hostplatform/errors"
	"github.com/wippyai/hostplatform/files"
)

// AssetMode reports whether reads are served from a packaged archive.
const AssetMode = true

func (p *Platform) selectBackend() (files.Backend, error) {
	if p.archive == nil {
		return nil, perrors.NotConfigured(perrors.OpInit, "asset archive")
	}
	return files.NewAssetBackend(p.archive, p.logger.Named("assets")), nil
}
