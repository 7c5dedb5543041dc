package collector

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/sirupsen/logrus"

	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/chunk"
	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/model"
)

// CollectLogs returns every event matching the request's pattern and window
// in the given streams. Streams are queried in chunks, one chunk at a time;
// events keep chunk, then page, then in-page order.
//
// A failure on any chunk discards everything gathered so far: the result is
// either complete or absent. An empty streams slice returns ErrNoStreams.
func (c *Collector) CollectLogs(ctx context.Context, streams []string) ([]model.LogEvent, error) {
	if len(streams) == 0 {
		return nil, ErrNoStreams
	}
	events := []model.LogEvent{}
	n := 0
	for batch := range chunk.Split(streams, c.chunkSize) {
		n++
		got, err := c.filterChunk(ctx, batch)
		if err != nil {
			return nil, err
		}
		c.log.WithFields(logrus.Fields{
			"chunk":   n,
			"streams": len(batch),
			"events":  len(got),
		}).Debug("collected chunk")
		events = append(events, got...)
	}
	return events, nil
}

// filterChunk pages through FilterLogEvents for one chunk of stream names.
func (c *Collector) filterChunk(ctx context.Context, streams []string) ([]model.LogEvent, error) {
	var events []model.LogEvent
	var next *string
	for {
		in := &cloudwatchlogs.FilterLogEventsInput{
			LogGroupName:   aws.String(c.req.LogGroupName()),
			LogStreamNames: streams,
			StartTime:      aws.Int64(c.req.Window.Start),
			EndTime:        aws.Int64(c.req.Window.End),
			Limit:          aws.Int32(c.eventPageSize),
			NextToken:      next,
		}
		if c.req.Pattern != "" {
			in.FilterPattern = aws.String(c.req.Pattern)
		}
		out, err := c.logs.FilterLogEvents(ctx, in)
		if err != nil {
			return nil, &ProviderError{Op: "FilterLogEvents", Err: err}
		}
		for _, e := range out.Events {
			events = append(events, model.LogEvent{
				LogStreamName: aws.ToString(e.LogStreamName),
				Timestamp:     aws.ToInt64(e.Timestamp),
				Message:       aws.ToString(e.Message),
				IngestionTime: aws.ToInt64(e.IngestionTime),
				EventID:       aws.ToString(e.EventId),
			})
		}
		if lastPage(next, out.NextToken) {
			break
		}
		next = out.NextToken
	}
	return events, nil
}
