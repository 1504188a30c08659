package compress

import (
	"image/png"

	"github.com/reusedev/media-hub/internal/consts"
	"github.com/reusedev/media-hub/tools"
)

// EncodeParams is the resolved codec parameter set for one (level, format)
// pair. Quality applies to JPEG/WebP, Effort (0 fastest .. 9 most compact)
// to PNG; GIF ignores both.
type EncodeParams struct {
	Format  tools.ImageFormat // format the encoder will actually emit
	Quality int
	Effort  int
}

// Policy maps compression levels to codec parameters. Instances are
// immutable after construction; the zero value is unusable, build one with
// DefaultPolicy or explicit tables.
type Policy struct {
	Quality   map[consts.CompressionLevel]int // JPEG/WebP quality percent
	PNGEffort map[consts.CompressionLevel]int // PNG effort scale 0-9
}

func DefaultPolicy() Policy {
	return Policy{
		Quality: map[consts.CompressionLevel]int{
			consts.LevelLossless:   100,
			consts.LevelMinimal:    95,
			consts.LevelModerate:   85,
			consts.LevelAggressive: 75,
		},
		PNGEffort: map[consts.CompressionLevel]int{
			consts.LevelLossless:   1,
			consts.LevelMinimal:    3,
			consts.LevelModerate:   6,
			consts.LevelAggressive: 9,
		},
	}
}

// ParamsFor resolves encode parameters. PNG keeps its lossless codec and
// only varies effort; GIF is re-encoded as-is (re-encoding alone strips
// metadata); anything unrecognized deliberately falls back to the JPEG
// table and a JPEG target, including WebP sources, for which no pure-Go
// encoder exists.
func (p Policy) ParamsFor(level consts.CompressionLevel, format tools.ImageFormat) EncodeParams {
	switch format {
	case tools.ImageFormatPNG:
		return EncodeParams{Format: tools.ImageFormatPNG, Effort: p.PNGEffort[level]}
	case tools.ImageFormatGIF:
		return EncodeParams{Format: tools.ImageFormatGIF}
	case tools.ImageFormatJPEG, tools.ImageFormatWEBP:
		return EncodeParams{Format: tools.ImageFormatJPEG, Quality: p.Quality[level]}
	default:
		return EncodeParams{Format: tools.ImageFormatJPEG, Quality: p.Quality[level]}
	}
}

// pngLevel quantizes the 0-9 effort scale onto the stdlib encoder settings.
func pngLevel(effort int) png.CompressionLevel {
	switch {
	case effort <= 1:
		return png.BestSpeed
	case effort <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// QualityUsed reports the parameter recorded in results: the effort value
// for PNG, the quality percent otherwise.
func (e EncodeParams) QualityUsed() int {
	if e.Format == tools.ImageFormatPNG {
		return e.Effort
	}
	return e.Quality
}
