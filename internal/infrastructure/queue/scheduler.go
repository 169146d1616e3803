package queue

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// NewPurgeScheduler enqueues the invitation purge on cronspec (e.g. "@daily").
// Run it alongside a Worker that was given a Purger.
func NewPurgeScheduler(redisOpt asynq.RedisConnOpt, cronspec string, log zerolog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		LogLevel: asynq.WarnLevel,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("schedule invitation purge failed")
			}
		},
	})
	if _, err := scheduler.Register(cronspec, asynq.NewTask(TypeInvitationPurge, nil, asynq.MaxRetry(1))); err != nil {
		return nil, err
	}
	return scheduler, nil
}
