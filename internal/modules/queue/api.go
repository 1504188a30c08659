package queue

import (
	"context"
	"sync"

	"github.com/reusedev/media-hub/internal/modules/logs"
)

// BatchTaskQueue runs asynchronous batch ingestions. One goroutine per
// task; the batch itself stays sequential inside the task.
var BatchTaskQueue = NewTaskQueue(100)
var closeOnce sync.Once

func exeBatchTask(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	for {
		select {
		case task, ok := <-BatchTaskQueue:
			if ok {
				wg.Add(1)
				go func() {
					if err := task.Execute(ctx); err != nil {
						logs.Logger.Err(err).Msg("batch task failed")
					}
					wg.Done()
				}()
			} else {
				// channel close
				wg.Done()
				return
			}
		case <-ctx.Done():
			closeOnce.Do(func() {
				close(BatchTaskQueue)
				logs.Logger.Info().Msg("Batch task queue closed")
			})
		}
	}
}

func InitBatchTaskQueue(ctx context.Context, wg *sync.WaitGroup) {
	go exeBatchTask(ctx, wg)
}
