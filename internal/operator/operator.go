package operator

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/caisse-server/internal/ledger"
	"github.com/carson-networks/caisse-server/internal/operator/actions"
	"github.com/carson-networks/caisse-server/internal/storage"
	"github.com/carson-networks/caisse-server/internal/storage/sqlconfig"
)

// WriterFactory opens a unit-of-work.
type WriterFactory interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

type Config struct {
	// Timeout bounds one Process call including retries. Zero disables it.
	Timeout time.Duration

	// MaxAttempts counts the first try. Values below 1 mean a single try.
	MaxAttempts     uint64
	InitialInterval time.Duration
}

// Operator runs actions inside one database transaction, committing only
// when every action succeeds.
type Operator struct {
	storage WriterFactory
	logger  *logrus.Logger
	config  Config
}

func NewOperator(s WriterFactory, logger *logrus.Logger, config Config) *Operator {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.InitialInterval <= 0 {
		config.InitialInterval = 50 * time.Millisecond
	}
	return &Operator{
		storage: s,
		logger:  logger,
		config:  config,
	}
}

// Process performs acts in order against a single Writer. A transient store
// failure replays the whole unit-of-work with exponential backoff; any other
// failure is returned after rollback.
func (o *Operator) Process(ctx context.Context, acts ...actions.IAction) error {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := o.processOnce(ctx, acts)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !ledger.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"wait_ms": wait.Milliseconds(),
		}).Warn("Operator.Process.Retry")
	}

	err := backoff.RetryNotify(operation, o.backoff(ctx), notify)
	if err != nil && ctx.Err() != nil && ledger.KindOf(err) == ledger.KindUnknown {
		return ledger.NewUnexpectedStoreError("operator.process", err, false)
	}
	return err
}

func (o *Operator) backoff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = o.config.InitialInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, o.config.MaxAttempts-1), ctx)
}

func (o *Operator) processOnce(ctx context.Context, acts []actions.IAction) error {
	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	for _, action := range acts {
		err = action.Perform(ctx, writer)
		if err != nil {
			o.rollback(ctx, writer, action, err)
			return err
		}
	}

	// A failed commit has already ended the transaction; there is nothing to roll back.
	if err = writer.Commit(ctx); err != nil {
		o.logger.WithError(err).Error("Operator.Process.CommitFailed")
		return sqlconfig.TranslateError("operator.commit", err)
	}
	return nil
}

func (o *Operator) rollback(ctx context.Context, writer *storage.Writer, action actions.IAction, cause error) {
	// The caller's context may already be done; rollback must still run.
	if err := writer.Rollback(context.WithoutCancel(ctx)); err != nil {
		o.logger.WithError(err).Error("Operator.Process.RollbackFailed")
	}

	entry := o.logger.WithError(cause).WithField("kind", ledger.KindOf(cause).String())
	if o.logger.IsLevelEnabled(logrus.DebugLevel) {
		entry = entry.WithField("action", spew.Sdump(action))
	}
	entry.Debug("Operator.Process.RolledBack")
}
