package client

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// AuthOptions selects the region and shared config profile.
type AuthOptions struct {
	Region  string
	Profile string
}

// Clients bundles the service clients built from one AWS configuration.
type Clients struct {
	Region string
	Logs   *cloudwatchlogs.Client
	Lambda *lambda.Client
	S3     *s3.Client
}

// NewLoadOptions returns config load options for the given settings. An empty
// profile falls back to AWS_PROFILE; an empty region is left to the SDK's
// default resolution.
func NewLoadOptions(o AuthOptions) []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error
	if o.Region != "" {
		opts = append(opts, config.WithRegion(o.Region))
	}
	profile := o.Profile
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	return opts
}

// New loads AWS configuration and returns the clients the collector needs.
func New(ctx context.Context, o AuthOptions) (*Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, NewLoadOptions(o)...)
	if err != nil {
		return nil, errors.Wrap(err, "load AWS configuration")
	}
	return &Clients{
		Region: cfg.Region,
		Logs:   cloudwatchlogs.NewFromConfig(cfg),
		Lambda: lambda.NewFromConfig(cfg),
		S3:     s3.NewFromConfig(cfg),
	}, nil
}
