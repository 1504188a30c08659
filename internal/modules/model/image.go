package model

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"gorm.io/gorm"
)

// ImageVariant is the persisted record for one stored rendition. Blob paths
// point at the canonical store and the direct-access mirror; the Dimensions
// column carries the compression bookkeeping blob.
type ImageVariant struct {
	Id                  int            `json:"id" gorm:"primaryKey"`
	ProductId           int            `json:"product_id" gorm:"column:product_id;index"`
	Path                string         `json:"path" gorm:"column:path;type:varchar(255)"`
	MirrorPath          string         `json:"mirror_path" gorm:"column:mirror_path;type:varchar(255)"`
	StorageSupplierName string         `json:"storage_supplier_name" gorm:"column:storage_supplier_name;type:varchar(20)"`
	DeviceClass         string         `json:"device_class" gorm:"column:device_class;type:enum('mobile','desktop')"`
	ImageType           string         `json:"image_type" gorm:"column:image_type;type:enum('thumbnail','gallery','hero')"`
	VariantSuffix       string         `json:"variant_suffix" gorm:"column:variant_suffix;type:varchar(30)"` // empty for single uploads
	AspectRatio         float64        `json:"aspect_ratio" gorm:"column:aspect_ratio;type:float"`
	Width               int            `json:"width" gorm:"column:width"`
	Height              int            `json:"height" gorm:"column:height"`
	OriginalSize        int64          `json:"original_size" gorm:"column:original_size"`
	CompressedSize      int64          `json:"compressed_size" gorm:"column:compressed_size"`
	SortOrder           int            `json:"sort_order" gorm:"column:sort_order;default:0"`
	Dimensions          string         `json:"dimensions" gorm:"column:dimensions;type:json"`
	CreatedAt           time.Time      `json:"created_at" gorm:"column:created_at;type:datetime;not null;default:CURRENT_TIMESTAMP"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (ImageVariant) TableName() string {
	return "image_variant"
}

// Dimensions is the structured bookkeeping blob attached to every stored
// image record. The field set is part of the on-disk contract; records
// written by prior versions unmarshal into exactly these fields.
type Dimensions struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	OriginalSize     int64   `json:"original_size"`
	CompressedSize   int64   `json:"compressed_size"`
	CompressionRatio float64 `json:"compression_ratio"`
	CompressionLevel string  `json:"compression_level"`
	QualityUsed      int     `json:"quality_used"`
}

func (d *Dimensions) Marsh() (string, error) {
	return jsoniter.MarshalToString(d)
}

func UnmarshalDimensions(data string) (*Dimensions, error) {
	var result Dimensions
	err := jsoniter.Unmarshal([]byte(data), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
