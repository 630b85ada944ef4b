// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// jobTimeout bounds a single run.
const jobTimeout = time.Minute

type TokenStore interface {
	PurgeRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

type Scheduler struct {
	c   *cron.Cron
	log *zap.Logger
}

// New registers the refresh-token purge on spec (standard five-field cron
// or a descriptor such as "@hourly").
func New(spec string, tokens TokenStore, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{c: cron.New(), log: log}
	_, err := s.c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := PurgeTokens(ctx, tokens, time.Now(), log); err != nil {
			log.Error("token purge failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("jobs: schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.c.Start()
	for _, e := range s.c.Entries() {
		s.log.Info("job scheduled", zap.Time("next", e.Next))
	}
}

// Stop prevents new runs and waits for a running one, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}

// PurgeTokens deletes refresh tokens that expired or were revoked before now.
func PurgeTokens(ctx context.Context, tokens TokenStore, now time.Time, log *zap.Logger) (int64, error) {
	n, err := tokens.PurgeRefreshTokens(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info("purged refresh tokens", zap.Int64("count", n))
	}
	return n, nil
}
