package collector

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/smithy-go"
)

// fakeLogsClient serves canned DescribeLogStreams pages and, for
// FilterLogEvents, pages keyed by the first stream name of each chunk.
type fakeLogsClient struct {
	streamPages []*cloudwatchlogs.DescribeLogStreamsOutput
	streamErr   error
	describeIn  []*cloudwatchlogs.DescribeLogStreamsInput

	eventPages map[string][]*cloudwatchlogs.FilterLogEventsOutput
	chunkErr   map[string]error
	filterIn   []*cloudwatchlogs.FilterLogEventsInput
	served     map[string]int
}

func (f *fakeLogsClient) DescribeLogStreams(ctx context.Context, in *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error) {
	f.describeIn = append(f.describeIn, in)
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	i := len(f.describeIn) - 1
	if i < len(f.streamPages) {
		return f.streamPages[i], nil
	}
	return &cloudwatchlogs.DescribeLogStreamsOutput{}, nil
}

func (f *fakeLogsClient) FilterLogEvents(ctx context.Context, in *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error) {
	f.filterIn = append(f.filterIn, in)
	key := ""
	if len(in.LogStreamNames) > 0 {
		key = in.LogStreamNames[0]
	}
	if err := f.chunkErr[key]; err != nil {
		return nil, err
	}
	if f.served == nil {
		f.served = map[string]int{}
	}
	i := f.served[key]
	f.served[key]++
	if pages := f.eventPages[key]; i < len(pages) {
		return pages[i], nil
	}
	return &cloudwatchlogs.FilterLogEventsOutput{}, nil
}

type fakeFunctionsClient struct {
	out   *lambda.GetFunctionConfigurationOutput
	err   error
	calls []*lambda.GetFunctionConfigurationInput
}

func (f *fakeFunctionsClient) GetFunctionConfiguration(ctx context.Context, in *lambda.GetFunctionConfigurationInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionConfigurationOutput, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func apiError(code, msg string) error {
	return &smithy.GenericAPIError{Code: code, Message: msg, Fault: smithy.FaultClient}
}

func stream(name string, created int64) types.LogStream {
	return types.LogStream{LogStreamName: aws.String(name), CreationTime: aws.Int64(created)}
}

func event(streamName, msg string, ts int64) types.FilteredLogEvent {
	return types.FilteredLogEvent{
		LogStreamName: aws.String(streamName),
		Message:       aws.String(msg),
		Timestamp:     aws.Int64(ts),
		IngestionTime: aws.Int64(ts + 1),
		EventId:       aws.String(fmt.Sprintf("%s-%d", streamName, ts)),
	}
}

func streamNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("2024/01/01/[$LATEST]%04d", i)
	}
	return out
}
