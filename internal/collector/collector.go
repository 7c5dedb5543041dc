package collector

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"

	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/window"
)

// LogGroupPrefix is where Lambda writes a function's log group.
const LogGroupPrefix = "/aws/lambda/"

const (
	// DefaultStreamPageSize is the DescribeLogStreams page size.
	DefaultStreamPageSize = 50
	// DefaultEventPageSize is the FilterLogEvents page size.
	DefaultEventPageSize = 1500
	// MaxStreamsPerFilter is the service limit on logStreamNames per FilterLogEvents call.
	MaxStreamsPerFilter = 100
)

// LogsClient is the subset of CloudWatch Logs API we use.
type LogsClient interface {
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	FilterLogEvents(ctx context.Context, params *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

// FunctionsClient is the subset of Lambda API we use.
type FunctionsClient interface {
	GetFunctionConfiguration(ctx context.Context, params *lambda.GetFunctionConfigurationInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionConfigurationOutput, error)
}

// Request describes one collection run.
type Request struct {
	Region       string
	Profile      string
	FunctionName string
	Window       window.TimeWindow
	Pattern      string
	// StreamGlob, when set, further restricts streams by name.
	StreamGlob glob.Glob
}

// LogGroupName returns the function's log group.
func (r Request) LogGroupName() string {
	return LogGroupPrefix + r.FunctionName
}

// Collector gathers a function's configuration, log streams and log events.
type Collector struct {
	logs      LogsClient
	functions FunctionsClient
	req       Request
	log       logrus.FieldLogger

	streamPageSize int32
	eventPageSize  int32
	chunkSize      int
}

// New creates a Collector. A nil logger discards output.
func New(logs LogsClient, functions FunctionsClient, req Request, log logrus.FieldLogger) *Collector {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Collector{
		logs:           logs,
		functions:      functions,
		req:            req,
		log:            log,
		streamPageSize: DefaultStreamPageSize,
		eventPageSize:  DefaultEventPageSize,
		chunkSize:      MaxStreamsPerFilter,
	}
}

// SetStreamPageSize overrides the DescribeLogStreams page size.
func (c *Collector) SetStreamPageSize(n int32) { c.streamPageSize = n }

// SetEventPageSize overrides the FilterLogEvents page size.
func (c *Collector) SetEventPageSize(n int32) { c.eventPageSize = n }

// SetChunkSize overrides how many stream names go into one FilterLogEvents call.
// Values above MaxStreamsPerFilter are rejected by the service.
func (c *Collector) SetChunkSize(n int) { c.chunkSize = n }

// lastPage reports whether pagination should stop after a page that returned
// next, given the token used to request it.
func lastPage(prev, next *string) bool {
	return next == nil || (prev != nil && *next == *prev)
}
