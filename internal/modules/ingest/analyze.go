package ingest

import (
	"bytes"
	"image"

	"github.com/reusedev/media-hub/internal/consts"
	"github.com/reusedev/media-hub/internal/modules/compress"
	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/reusedev/media-hub/internal/modules/upload"
)

// AnalysisReport is the advisory verdict for a prospective upload. No
// blob is written and no record is produced.
type AnalysisReport struct {
	Filename         string                  `json:"filename"`
	Size             int64                   `json:"size"`
	SizeOK           bool                    `json:"size_ok"`
	Width            int                     `json:"width"`
	Height           int                     `json:"height"`
	AspectRatio      float64                 `json:"aspect_ratio"`
	RatioValid       bool                    `json:"ratio_valid"`
	RatioMessage     string                  `json:"ratio_message,omitempty"`
	RecommendedLevel consts.CompressionLevel `json:"recommended_level"`
	UploadReady      bool                    `json:"upload_ready"`
}

// Analyze runs the recommendation heuristic and a dry ratio check. Only the
// image header is decoded.
func (p *Pipeline) Analyze(raw upload.RawUpload, device consts.DeviceClass) (*AnalysisReport, error) {
	report := &AnalysisReport{
		Filename:         raw.Filename,
		Size:             raw.Size,
		SizeOK:           raw.Size <= p.validator.MaxBytes(),
		RecommendedLevel: RecommendLevel(raw.Size),
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw.Data))
	if err != nil {
		return nil, errs.Wrap(errs.KindValidationFailed,
			"image could not be decoded, the file may be corrupted",
			errs.ErrUndecodableImage).
			With("filename", raw.Filename)
	}
	report.Width = cfg.Width
	report.Height = cfg.Height
	report.AspectRatio = compress.Round2(float64(cfg.Width) / float64(cfg.Height))
	if err := p.ratios.Validate(report.AspectRatio, device); err != nil {
		report.RatioValid = false
		report.RatioMessage = errs.Normalize(err).UserMessage()
	} else {
		report.RatioValid = true
	}
	report.UploadReady = report.RatioValid && report.SizeOK
	return report, nil
}
