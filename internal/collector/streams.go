package collector

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/gobwas/glob"

	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/model"
	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/window"
)

// FindLogStreams lists every stream of the function's log group and returns,
// in service order, the names of those created within the window.
// Zero matches is a success and yields an empty, non-nil slice.
func (c *Collector) FindLogStreams(ctx context.Context) ([]string, error) {
	group := c.req.LogGroupName()
	var all []model.LogStream
	var next *string
	for {
		out, err := c.logs.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
			LogGroupName: aws.String(group),
			OrderBy:      types.OrderByLastEventTime,
			Descending:   aws.Bool(true),
			Limit:        aws.Int32(c.streamPageSize),
			NextToken:    next,
		})
		if err != nil {
			return nil, &ProviderError{Op: "DescribeLogStreams", Err: err}
		}
		for _, s := range out.LogStreams {
			all = append(all, model.LogStream{
				Name:         aws.ToString(s.LogStreamName),
				CreationTime: aws.ToInt64(s.CreationTime),
			})
		}
		if lastPage(next, out.NextToken) {
			break
		}
		next = out.NextToken
	}

	names := filterStreams(all, c.req.Window, c.req.StreamGlob)
	c.log.WithField("total", len(all)).Debugf("filtered log streams: %v", names)
	return names, nil
}

func filterStreams(streams []model.LogStream, w window.TimeWindow, g glob.Glob) []string {
	names := make([]string, 0, len(streams))
	for _, s := range streams {
		if !w.Contains(s.CreationTime) {
			continue
		}
		if g != nil && !g.Match(s.Name) {
			continue
		}
		names = append(names, s.Name)
	}
	return names
}
