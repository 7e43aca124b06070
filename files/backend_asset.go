package files

import (
	"strings"

	"go.uber.org/zap"

	perrors "github.com/wippyai/hostplatform/errors"
)

// AssetBackend streams read-only assets out of a packaged archive.
type AssetBackend struct {
	archive Archive
	raw     *RawBackend
	logger  *zap.Logger
}

// NewAssetBackend creates a backend reading from archive.
func NewAssetBackend(archive Archive, logger *zap.Logger) *AssetBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetBackend{
		archive: archive,
		raw:     NewRawBackend(),
		logger:  logger,
	}
}

func (b *AssetBackend) Name() string {
	return "asset"
}

// OpenRead looks path up in the archive. A leading "./" is not part of
// archive names and is stripped first.
func (b *AssetBackend) OpenRead(path string) (Stream, error) {
	name := assetName(path)
	b.logger.Info("opening asset", zap.String("asset", name))

	s, err := b.archive.Open(name)
	if err != nil {
		b.logger.Info("asset not found", zap.String("asset", name))
		return nil, perrors.AssetLookupFailed(name, err)
	}

	if size, err := s.Length(); err == nil {
		b.logger.Info("asset size", zap.String("asset", name), zap.Int64("size", size))
	}
	return s, nil
}

// Exists probes the archive, then the raw filesystem where written
// files live.
func (b *AssetBackend) Exists(path string) bool {
	if s, err := b.archive.Open(assetName(path)); err == nil {
		s.Close()
		return true
	}
	return b.raw.Exists(path)
}

func assetName(path string) string {
	return strings.TrimPrefix(path, "./")
}
