package handler

import (
	"context"

	"github.com/reusedev/media-hub/internal/modules/dao"
	"github.com/reusedev/media-hub/internal/modules/ingest"
	"github.com/reusedev/media-hub/internal/modules/logs"
	"github.com/reusedev/media-hub/internal/modules/upload"
)

// BatchIngestTask runs a batch ingestion off the request path. Items are
// processed sequentially inside the task so at most one decoded image is
// held at a time.
type BatchIngestTask struct {
	Raws []upload.RawUpload
	Req  ingest.Request
}

func (t *BatchIngestTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	outcome := Pipe.IngestMany(t.Raws, t.Req)
	for _, record := range outcome.Results {
		if err := dao.CreateVariant(record); err != nil {
			logs.Logger.Err(err).Str("path", record.Path).Msg("create variant record failed")
		}
	}
	summary := outcome.Summary()
	logs.Logger.Info().Int("total", summary.TotalFiles).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int64("bytes_saved", summary.BytesSaved).
		Msg("async batch finished")
	return nil
}
