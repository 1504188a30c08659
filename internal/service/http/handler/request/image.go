package request

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/reusedev/media-hub/internal/consts"
)

type UploadImage struct {
	File      *multipart.FileHeader `form:"file"` // preferred over url when both are set
	URL       string                `form:"url"`
	ProductId int                   `form:"product_id"`
	Device    string                `form:"device"`
	ImageType string                `form:"image_type"`
	SortOrder int                   `form:"sort_order"`
	Level     string                `form:"level"`    // empty means recommended
	Variants  bool                  `form:"variants"` // multi-variant mode
	ToTarget  bool                  `form:"to_target"`

	OnlineFileName    string `form:"-"`
	OnlineFileContent []byte `form:"-"`
}

func (u *UploadImage) Valid() error {
	if u.File == nil && u.URL == "" {
		return fmt.Errorf("must fill file or url")
	}
	if u.ProductId <= 0 {
		return fmt.Errorf("invalid product_id: %d, must be greater than 0", u.ProductId)
	}
	if !consts.DeviceClass(u.Device).Valid() {
		return fmt.Errorf("invalid device: %s, must be 'mobile' or 'desktop'", u.Device)
	}
	if !consts.ImageType(u.ImageType).Valid() {
		return fmt.Errorf("invalid image_type: %s, must be 'thumbnail', 'gallery' or 'hero'", u.ImageType)
	}
	if u.Level != "" && !consts.CompressionLevel(u.Level).Valid() {
		return fmt.Errorf("invalid level: %s, must be one of 'lossless', 'minimal', 'moderate', 'aggressive'", u.Level)
	}
	if u.SortOrder < 0 {
		return fmt.Errorf("invalid sort_order: %d, must be non-negative", u.SortOrder)
	}
	return nil
}

type BatchUpload struct {
	ProductId int    `form:"product_id"`
	Device    string `form:"device"`
	ImageType string `form:"image_type"`
	SortOrder int    `form:"sort_order"`
	Level     string `form:"level"`
	Async     bool   `form:"async"`
}

func (b *BatchUpload) Valid() error {
	single := UploadImage{
		ProductId: b.ProductId,
		Device:    b.Device,
		ImageType: b.ImageType,
		SortOrder: b.SortOrder,
		Level:     b.Level,
	}
	single.File = &multipart.FileHeader{} // files are checked separately
	return single.Valid()
}

type AnalyzeImage struct {
	File   *multipart.FileHeader `form:"file"`
	Device string                `form:"device"`
}

func (a *AnalyzeImage) Valid() error {
	if a.File == nil {
		return fmt.Errorf("must fill file")
	}
	if !consts.DeviceClass(a.Device).Valid() {
		return fmt.Errorf("invalid device: %s, must be 'mobile' or 'desktop'", a.Device)
	}
	return nil
}

type GetImage struct {
	ID     int    `form:"id"`
	Expire string `form:"expire"`
	Mirror bool   `form:"mirror"` // sign the direct-access copy instead
}

const ExpireDefault = "168h"

func (g *GetImage) CacheKey() string {
	return fmt.Sprintf("image_get_%d_%s_%v", g.ID, g.Expire, g.Mirror)
}

func (g *GetImage) Valid() error {
	if g.ID <= 0 {
		return fmt.Errorf("invalid ID: %d, must be greater than 0", g.ID)
	}
	if g.Expire != "" {
		if _, err := time.ParseDuration(g.Expire); err != nil {
			return fmt.Errorf("invalid expire duration: %s", g.Expire)
		}
	}
	return nil
}

func (g *GetImage) FullWithDefault() {
	if g.Expire == "" {
		g.Expire = ExpireDefault
	}
}

type SortImage struct {
	ID        int `json:"id"`
	SortOrder int `json:"sort_order"`
}

func (s *SortImage) Valid() error {
	if s.ID <= 0 {
		return fmt.Errorf("invalid ID: %d, must be greater than 0", s.ID)
	}
	if s.SortOrder < 0 {
		return fmt.Errorf("invalid sort_order: %d, must be non-negative", s.SortOrder)
	}
	return nil
}

type DeleteImage struct {
	ID int `form:"id"`
}

func (d *DeleteImage) Valid() error {
	if d.ID <= 0 {
		return fmt.Errorf("invalid ID: %d, must be greater than 0", d.ID)
	}
	return nil
}
