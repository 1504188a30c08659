package dao

import (
	"github.com/reusedev/media-hub/internal/components/mysql"
	"github.com/reusedev/media-hub/internal/modules/model"
)

func CreateVariant(v *model.ImageVariant) error {
	return mysql.DB.Model(&model.ImageVariant{}).Create(v).Error
}

func VariantById(id int) (model.ImageVariant, error) {
	var variant model.ImageVariant
	err := mysql.DB.Model(&model.ImageVariant{}).Where("id = ?", id).First(&variant).Error
	if err != nil {
		return model.ImageVariant{}, err
	}
	return variant, nil
}

func VariantsByProduct(productId int) ([]model.ImageVariant, error) {
	var variants []model.ImageVariant
	err := mysql.DB.Model(&model.ImageVariant{}).
		Where("product_id = ?", productId).
		Order("sort_order asc, id asc").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

func UpdateSortOrder(id, sortOrder int) error {
	return mysql.DB.Model(&model.ImageVariant{}).
		Where("id = ?", id).
		Update("sort_order", sortOrder).Error
}

// SoftDeleteVariant marks the record deleted. Blob removal is the caller's
// responsibility and may race an in-flight ingest for the same slot.
func SoftDeleteVariant(id int) error {
	return mysql.DB.Delete(&model.ImageVariant{}, id).Error
}
