package jobs

import (
	"context"
	"log/slog"
	"time"

	"takeout/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentTimeoutJob manages the scheduled cancellation of unpaid orders.
// Runs every minute and cancels orders that sat in the pending-payment state
// longer than the configured timeout.
type PaymentTimeoutJob struct {
	handler commands.CancelTimedOutOrdersCommandHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPaymentTimeoutJob creates a new job for reclaiming abandoned orders.
// Uses CancelTimedOutOrdersCommandHandler to sweep stale orders every minute.
func NewPaymentTimeoutJob(
	handler commands.CancelTimedOutOrdersCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *PaymentTimeoutJob {
	return &PaymentTimeoutJob{
		handler: handler,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "payment_timeout_job"),
	}
}

// Start begins the payment timeout job to run every minute.
func (j *PaymentTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelTimedOutOrdersCommand(j.timeout)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment timeout job misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Payment timeout job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment timeout job started (running every minute)")
	return nil
}

// Stop stops the payment timeout job.
func (j *PaymentTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment timeout job stopped")
}
