package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reusedev/media-hub/internal/consts"
)

// Filename builds the collision-resistant blob name:
// product_{productId}_{device}_{imageType}_{YmdHis}_{rand6}{ext}.
// The scheme is path-stable; changing it breaks record interoperability.
func Filename(productId int, device consts.DeviceClass, imageType consts.ImageType, ext string) string {
	timestamp := time.Now().Format("20060102150405")
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("product_%d_%s_%s_%s_%s%s", productId, device, imageType, timestamp, random, ext)
}

// VariantFilename appends a variant suffix before the extension.
func VariantFilename(base, suffix string) string {
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return base + suffix
	}
	return base[:idx] + suffix + base[idx:]
}
