package collector

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/model"
)

// Collect runs the configuration, stream and log stages in turn. Stages are
// guarded separately: a failed stage is logged and leaves its payload nil
// while the others still run. The log stage reads the stream stage's names,
// so it has nothing to do when that stage fails.
func (c *Collector) Collect(ctx context.Context) model.CollectionResult {
	var res model.CollectionResult

	c.log.Info("Trying to get Lambda Function configuration...")
	if cfg, err := c.FunctionConfiguration(ctx); err != nil {
		c.logFailure(err)
	} else {
		res.Config = c.encode("function configuration", cfg)
	}

	c.log.Info("Trying to get CloudWatch Logs Streams...")
	streams, err := c.FindLogStreams(ctx)
	if err != nil {
		c.log.Errorf("CloudWatch Log Group %s doesn't exist", c.req.LogGroupName())
		c.logFailure(err)
	} else {
		res.Streams = c.encode("log streams", streams)
	}

	c.log.Info("Trying to collect logs from CloudWatch Logs...")
	events, err := c.CollectLogs(ctx, streams)
	switch {
	case errors.Is(err, ErrNoStreams):
		c.log.Info("No CloudWatch Log stream match the criteria.")
	case err != nil:
		c.logFailure(err)
	default:
		c.log.Debugf("collected %d log events", len(events))
		res.Logs = c.encode("log events", events)
	}

	return res
}

func (c *Collector) logFailure(err error) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		c.log.WithField("operation", pe.Op).WithField("code", pe.Code()).Error(pe.Message())
		return
	}
	c.log.Error(err.Error())
}

func (c *Collector) encode(what string, v any) model.Payload {
	p, err := model.Encode(v)
	if err != nil {
		c.log.WithError(err).Errorf("failed to encode %s", what)
		return nil
	}
	return p
}
