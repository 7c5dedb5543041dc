package collector

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/window"
)

func TestFindLogStreamsFiltersByCreationTime(t *testing.T) {
	f := &fakeLogsClient{streamPages: []*cloudwatchlogs.DescribeLogStreamsOutput{
		{LogStreams: []types.LogStream{stream("s500", 500), stream("s1000", 1000), stream("s3000", 3000)}, NextToken: aws.String("p2")},
		{LogStreams: []types.LogStream{stream("s5000", 5000), stream("s6000", 6000)}},
	}}
	req := Request{FunctionName: "HelloWorld", Window: window.TimeWindow{Start: 1000, End: 5000}}

	got, err := New(f, nil, req, nil).FindLogStreams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"s1000", "s3000", "s5000"}, got)

	require.Len(t, f.describeIn, 2)
	for i, in := range f.describeIn {
		assert.Equal(t, "/aws/lambda/HelloWorld", aws.ToString(in.LogGroupName))
		assert.Equal(t, types.OrderByLastEventTime, in.OrderBy)
		assert.True(t, aws.ToBool(in.Descending))
		assert.Equal(t, int32(DefaultStreamPageSize), aws.ToInt32(in.Limit))
		if i == 0 {
			assert.Nil(t, in.NextToken)
		} else {
			assert.Equal(t, "p2", aws.ToString(in.NextToken))
		}
	}
}

func TestFindLogStreamsNoMatchIsEmptySuccess(t *testing.T) {
	f := &fakeLogsClient{streamPages: []*cloudwatchlogs.DescribeLogStreamsOutput{
		{LogStreams: []types.LogStream{stream("old", 10), stream("new", 99999)}},
	}}
	req := Request{FunctionName: "fn", Window: window.TimeWindow{Start: 100, End: 200}}

	got, err := New(f, nil, req, nil).FindLogStreams(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindLogStreamsGroupNotFound(t *testing.T) {
	f := &fakeLogsClient{streamErr: apiError("ResourceNotFoundException", "The specified log group does not exist.")}

	got, err := New(f, nil, Request{FunctionName: "missing"}, nil).FindLogStreams(context.Background())
	assert.Nil(t, got)
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "DescribeLogStreams", pe.Op)
	assert.Equal(t, "ResourceNotFoundException", pe.Code())
	assert.Equal(t, "The specified log group does not exist.", pe.Message())
}

func TestFindLogStreamsStopsOnRepeatedToken(t *testing.T) {
	f := &fakeLogsClient{streamPages: []*cloudwatchlogs.DescribeLogStreamsOutput{
		{LogStreams: []types.LogStream{stream("a", 1)}, NextToken: aws.String("T")},
		{LogStreams: []types.LogStream{stream("b", 2)}, NextToken: aws.String("T")},
		{LogStreams: []types.LogStream{stream("c", 3)}},
	}}
	req := Request{FunctionName: "fn", Window: window.TimeWindow{Start: 0, End: 10}}

	got, err := New(f, nil, req, nil).FindLogStreams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Len(t, f.describeIn, 2)
}

func TestFindLogStreamsHonorsPageSize(t *testing.T) {
	f := &fakeLogsClient{}
	c := New(f, nil, Request{FunctionName: "fn"}, nil)
	c.SetStreamPageSize(10)

	_, err := c.FindLogStreams(context.Background())
	require.NoError(t, err)
	require.Len(t, f.describeIn, 1)
	assert.Equal(t, int32(10), aws.ToInt32(f.describeIn[0].Limit))
}

func TestFilterStreams(t *testing.T) {
	w := window.TimeWindow{Start: 1000, End: 5000}
	tests := []struct {
		name string
		glob string
		want []string
	}{
		{"window-only", "", []string{"2024/01/01/[$LATEST]a", "2024/01/01/[7]b", "2024/01/02/[$LATEST]c"}},
		{"latest-only", "*\\[$LATEST\\]*", []string{"2024/01/01/[$LATEST]a", "2024/01/02/[$LATEST]c"}},
		{"by-day", "2024/01/01/*", []string{"2024/01/01/[$LATEST]a", "2024/01/01/[7]b"}},
	}
	streams := []struct {
		name    string
		created int64
	}{
		{"2024/01/01/[$LATEST]a", 1000},
		{"2024/01/01/[7]b", 2000},
		{"2024/01/02/[$LATEST]c", 5000},
		{"2024/01/02/[$LATEST]late", 5001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g glob.Glob
			if tt.glob != "" {
				g = glob.MustCompile(tt.glob)
			}
			var in []types.LogStream
			for _, s := range streams {
				in = append(in, stream(s.name, s.created))
			}
			f := &fakeLogsClient{streamPages: []*cloudwatchlogs.DescribeLogStreamsOutput{{LogStreams: in}}}
			got, err := New(f, nil, Request{FunctionName: "fn", Window: w, StreamGlob: g}, nil).FindLogStreams(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
