package ingest

import (
	"bytes"

	"github.com/disintegration/imaging"
	"github.com/reusedev/media-hub/internal/consts"
	"github.com/reusedev/media-hub/internal/modules/compress"
	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/reusedev/media-hub/internal/modules/logs"
	"github.com/reusedev/media-hub/internal/modules/model"
	"github.com/reusedev/media-hub/internal/modules/ratio"
	"github.com/reusedev/media-hub/internal/modules/storage"
	"github.com/reusedev/media-hub/internal/modules/upload"
	"github.com/reusedev/media-hub/internal/modules/validate"
	"github.com/reusedev/media-hub/internal/modules/variant"
	"github.com/reusedev/media-hub/tools"
)

// Pipeline orchestrates validate → compress → ratio gate → naming → dual
// persistence. Safe for concurrent use across independent uploads: every
// call works only on its own buffers.
type Pipeline struct {
	validator    *validate.Validator
	compressor   *compress.Compressor
	ratios       ratio.Policy
	writer       *storage.DualWriter
	supplierName string
	targetBytes  int64
}

func New(validator *validate.Validator, compressor *compress.Compressor, ratios ratio.Policy, writer *storage.DualWriter, supplierName string, targetBytes int64) *Pipeline {
	return &Pipeline{
		validator:    validator,
		compressor:   compressor,
		ratios:       ratios,
		writer:       writer,
		supplierName: supplierName,
		targetBytes:  targetBytes,
	}
}

// Request carries the catalog collaborator's intent for one upload.
type Request struct {
	ProductId int
	Device    consts.DeviceClass
	ImageType consts.ImageType
	SortOrder int
	// Level empty means "recommend from size".
	Level consts.CompressionLevel
}

// RecommendLevel suggests a compression level from the raw byte size.
// Purely advisory; an explicit level always wins.
func RecommendLevel(size int64) consts.CompressionLevel {
	switch {
	case size < 1<<20:
		return consts.LevelLossless
	case size < 5<<20:
		return consts.LevelMinimal
	case size < 15<<20:
		return consts.LevelModerate
	default:
		return consts.LevelAggressive
	}
}

// Ingest processes a single upload end to end and returns the unsaved
// ImageVariant record. The ratio gate runs before any write, so a rejected
// upload never leaves a blob behind.
func (p *Pipeline) Ingest(raw upload.RawUpload, req Request) (*model.ImageVariant, error) {
	if err := p.validator.Validate(raw); err != nil {
		return nil, err
	}
	level := req.Level
	if level == "" {
		level = RecommendLevel(raw.Size)
	}
	result, err := p.compressor.Compress(raw, level)
	if err != nil {
		return nil, err
	}
	if err := p.ratios.Validate(result.AspectRatio, req.Device); err != nil {
		return nil, err
	}
	name := Filename(req.ProductId, req.Device, req.ImageType, result.Format.Ext())
	record, err := p.persist(result, name, "", req)
	result.Data = nil
	if err != nil {
		return nil, err
	}
	logs.Logger.Info().Str("filename", raw.Filename).Str("path", record.Path).
		Str("level", level.String()).Float64("ratio", result.Ratio).
		Msg("image ingested")
	return record, nil
}

// IngestToTargetSize is Ingest with the level chosen by walking the ladder
// until the compressed output fits under the configured target size.
func (p *Pipeline) IngestToTargetSize(raw upload.RawUpload, req Request) (*model.ImageVariant, error) {
	if err := p.validator.Validate(raw); err != nil {
		return nil, err
	}
	result, err := p.compressor.CompressToTargetSize(raw, p.targetBytes)
	if err != nil {
		return nil, err
	}
	if err := p.ratios.Validate(result.AspectRatio, req.Device); err != nil {
		return nil, err
	}
	if !result.TargetAchieved {
		logs.Logger.Warn().Str("filename", raw.Filename).
			Int64("compressed_size", result.CompressedSize).
			Int64("target", p.targetBytes).
			Msg("target size not reached, keeping aggressive result")
	}
	name := Filename(req.ProductId, req.Device, req.ImageType, result.Format.Ext())
	record, err := p.persist(result, name, "", req)
	result.Data = nil
	if err != nil {
		return nil, err
	}
	return record, nil
}

// IngestVariants decodes the source once and persists the three fixed
// renditions. On a later variant's failure the earlier writes are removed
// best-effort before the error propagates.
func (p *Pipeline) IngestVariants(raw upload.RawUpload, req Request) ([]*model.ImageVariant, error) {
	if err := p.validator.Validate(raw); err != nil {
		return nil, err
	}
	level := req.Level
	if level == "" {
		level = RecommendLevel(raw.Size)
	}
	format := tools.DetectImageType(raw.Data)
	img, err := imaging.Decode(bytes.NewReader(raw.Data))
	if err != nil {
		return nil, errs.Wrap(errs.KindCompressionFailed, "failed to decode image", err).
			With("filename", raw.Filename).With("size", raw.Size)
	}
	base := Filename(req.ProductId, req.Device, req.ImageType, format.Ext())
	records := make([]*model.ImageVariant, 0, len(variant.DefaultSpecs))
	for _, spec := range variant.DefaultSpecs {
		cropped := spec.Crop(img)
		result, err := p.compressor.CompressImage(cropped, format, raw.Size, level)
		cropped = nil
		if err != nil {
			p.rollbackVariants(records)
			img = nil
			return nil, errs.Normalize(err).With("filename", raw.Filename).With("variant", spec.Suffix)
		}
		name := VariantFilename(base, spec.Suffix)
		variantReq := req
		variantReq.Device = spec.Device
		record, err := p.persist(result, name, spec.Suffix, variantReq)
		result.Data = nil
		if err != nil {
			p.rollbackVariants(records)
			img = nil
			return nil, err
		}
		records = append(records, record)
	}
	img = nil
	return records, nil
}

func (p *Pipeline) rollbackVariants(records []*model.ImageVariant) {
	for _, r := range records {
		if err := p.writer.Delete(r.Path, r.MirrorPath); err != nil {
			logs.Logger.Warn().Str("path", r.Path).Err(err).
				Msg("variant rollback delete failed")
		}
	}
}

// persist dual-writes the encoded bytes and assembles the record.
func (p *Pipeline) persist(result *compress.CompressionResult, name, suffix string, req Request) (*model.ImageVariant, error) {
	canonical, mirror, err := p.writer.Write(name, result.Data)
	if err != nil {
		return nil, err
	}
	dims := model.Dimensions{
		Width:            result.Width,
		Height:           result.Height,
		OriginalSize:     result.OriginalSize,
		CompressedSize:   result.CompressedSize,
		CompressionRatio: result.Ratio,
		CompressionLevel: result.Level.String(),
		QualityUsed:      result.QualityUsed,
	}
	blob, err := dims.Marsh()
	if err != nil {
		return nil, errs.Normalize(err)
	}
	return &model.ImageVariant{
		ProductId:           req.ProductId,
		Path:                canonical,
		MirrorPath:          mirror,
		StorageSupplierName: p.supplierName,
		DeviceClass:         req.Device.String(),
		ImageType:           req.ImageType.String(),
		VariantSuffix:       suffix,
		AspectRatio:         result.AspectRatio,
		Width:               result.Width,
		Height:              result.Height,
		OriginalSize:        result.OriginalSize,
		CompressedSize:      result.CompressedSize,
		SortOrder:           req.SortOrder,
		Dimensions:          blob,
	}, nil
}

// Delete removes both blob copies of a stored variant. Record bookkeeping
// belongs to the catalog collaborator.
func (p *Pipeline) Delete(canonical, mirror string) error {
	return p.writer.Delete(canonical, mirror)
}

// Writer exposes the dual writer for read-path collaborators.
func (p *Pipeline) Writer() *storage.DualWriter {
	return p.writer
}
