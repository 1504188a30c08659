package ingest

import (
	"github.com/reusedev/media-hub/internal/modules/errs"
	"github.com/reusedev/media-hub/internal/modules/model"
	"github.com/reusedev/media-hub/internal/modules/upload"
)

// BatchFailure records one item's failure, keyed by the original filename.
type BatchFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// BatchOutcome aggregates a batch run. Read-only once returned; summary
// counters are derived from the lists so they can never drift.
type BatchOutcome struct {
	Results  []*model.ImageVariant `json:"results"`
	Failures []BatchFailure        `json:"failures"`

	total int
}

// BatchSummary is computed, not tracked.
type BatchSummary struct {
	TotalFiles   int     `json:"total_files"`
	Succeeded    int     `json:"succeeded"`
	Failed       int     `json:"failed"`
	BytesSaved   int64   `json:"bytes_saved"`
	AverageRatio float64 `json:"average_ratio"`
}

func (b *BatchOutcome) Summary() BatchSummary {
	s := BatchSummary{
		TotalFiles: b.total,
		Succeeded:  len(b.Results),
		Failed:     len(b.Failures),
	}
	var ratioSum float64
	for _, r := range b.Results {
		s.BytesSaved += r.OriginalSize - r.CompressedSize
		if dims, err := model.UnmarshalDimensions(r.Dimensions); err == nil {
			ratioSum += dims.CompressionRatio
		}
	}
	if len(b.Results) > 0 {
		s.AverageRatio = ratioSum / float64(len(b.Results))
	}
	return s
}

// IngestMany processes each item independently and sequentially. A failing
// item lands in the failure list and never aborts its siblings. Each item
// runs through ingestOne so its decoded buffer dies before the next item
// starts; a batch holds at most one decoded image at a time.
func (p *Pipeline) IngestMany(raws []upload.RawUpload, req Request) *BatchOutcome {
	outcome := &BatchOutcome{
		Results:  make([]*model.ImageVariant, 0, len(raws)),
		Failures: make([]BatchFailure, 0),
		total:    len(raws),
	}
	order := req.SortOrder
	for i := range raws {
		itemReq := req
		itemReq.SortOrder = order
		record, err := p.ingestOne(raws[i], itemReq)
		raws[i].Data = nil
		if err != nil {
			outcome.Failures = append(outcome.Failures, BatchFailure{
				Filename: raws[i].Filename,
				Error:    errs.Normalize(err).UserMessage(),
			})
			continue
		}
		outcome.Results = append(outcome.Results, record)
		order++
	}
	return outcome
}

func (p *Pipeline) ingestOne(raw upload.RawUpload, req Request) (*model.ImageVariant, error) {
	return p.Ingest(raw, req)
}
