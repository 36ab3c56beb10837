package cronrunner

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner schedules background jobs with second-level specs. Specs are read in
// the location the runner was created with.
type Runner struct {
	cron    *cron.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

func New(logger *zap.Logger, baseCtx context.Context, loc *time.Location) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// Add registers job under name. A panicking job is logged and the schedule
// keeps running.
func (r *Runner) Add(name, spec string, job func(context.Context) error) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		ctx := r.baseCtx
		if ctx == nil {
			ctx = context.Background()
		}
		if ctx.Err() != nil {
			return
		}
		defer func() {
			if p := recover(); p != nil && r.logger != nil {
				r.logger.Error("cron job panicked", zap.String("job", name), zap.Any("panic", p))
			}
		}()
		start := time.Now()
		err := job(ctx)
		if r.logger == nil {
			return
		}
		if err != nil {
			r.logger.Warn("cron job failed", zap.String("job", name), zap.Error(err))
			return
		}
		r.logger.Debug("cron job done", zap.String("job", name), zap.Duration("took", time.Since(start)))
	})
}

func (r *Runner) Start() {
	if r.logger != nil {
		r.logger.Info("cron started", zap.Int("jobs", len(r.cron.Entries())))
	}
	r.cron.Start()
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	if r.logger != nil {
		r.logger.Info("cron stopped")
	}
}
