package service

import (
	"context"

	"go.uber.org/zap"
)

// MediaStore is the external object storage holding the uploaded media
type MediaStore interface {
	Delete(ctx context.Context, key string) error
}

// NopMedia is used when no external storage is configured
type NopMedia struct{}

func (NopMedia) Delete(_ context.Context, key string) error {
	zap.L().Debug("No media store configured, skipping delete", zap.String("key", key))
	return nil
}
