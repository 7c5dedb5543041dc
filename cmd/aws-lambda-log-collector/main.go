package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nao-Mk2/aws-lambda-log-collector/cmd"
	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/client"
	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/collector"
	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/output"
)

var version = "dev"

var settings = viper.New()

var rootCommand = &cobra.Command{
	Use:     "aws-lambda-log-collector",
	Short:   "Gather and filter Lambda function logs stored in CloudWatch Logs",
	Version: version,
	Args:    cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Exit(run(context.Background(), cmd.CollectOptions(settings)))
	},
}

func init() {
	if err := cmd.BindFlags(rootCommand.Flags(), settings); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(2)
	}
}

func run(ctx context.Context, opts *cmd.Options) int {
	if msg, code := opts.Validate(); code != 0 {
		fmt.Fprintln(os.Stderr, msg)
		return code
	}

	logger, err := cmd.NewLogger(opts.LogLevel, opts.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	log := logger.WithFields(logrus.Fields{
		"function": opts.FunctionName,
		"run":      uuid.NewString(),
	})

	// Pre-flight: nothing below talks to AWS until these pass.
	w, err := cmd.ResolveTimeWindow(opts.StartTime, opts.EndTime)
	if err != nil {
		log.WithError(err).Error("invalid time window")
		return 2
	}
	if err := client.CheckProfile(opts.Profile); err != nil {
		log.Error(err.Error())
		return 1
	}
	streamGlob, _ := opts.CompileStreamGlob()
	q, _ := opts.CompileQuery()

	clients, err := client.New(ctx, client.AuthOptions{Region: opts.Region, Profile: opts.Profile})
	if err != nil {
		log.WithError(err).Error("failed to create AWS clients")
		return 1
	}

	req := collector.Request{
		Region:       opts.Region,
		Profile:      opts.Profile,
		FunctionName: opts.FunctionName,
		Window:       w,
		Pattern:      opts.Pattern,
		StreamGlob:   streamGlob,
	}
	log.Debugf("Log group name: %s", req.LogGroupName())

	res := collector.New(clients.Logs, clients.Lambda, req, log).Collect(ctx)

	if q != nil {
		projected, err := q.Apply(res.Logs)
		if err != nil {
			log.WithError(err).Errorf("query %q failed; writing unfiltered logs", q)
		} else {
			res.Logs = projected
		}
	}

	root, err := output.ExpandRoot(opts.Output)
	if err != nil {
		log.WithError(err).Error("invalid output directory")
		return 1
	}
	layout := output.NewLayout(root, opts.FunctionName, opts.StartTime, opts.EndTime)
	fs := afero.NewOsFs()

	written, err := output.NewWriter(fs, log).Write(layout, res)
	if err != nil {
		log.WithError(err).Error("failed to write output")
		return 1
	}
	if len(written) == 0 || !opts.ShouldCompress() {
		return 0
	}

	log.Info("Trying to compress the output files...")
	archive, err := output.Compress(fs, layout.Dir())
	if err != nil {
		log.WithError(err).Error("failed to compress output")
		return 0
	}
	log.Infof("Logs output file at %s", archive)

	if opts.S3Bucket != "" {
		up := output.NewUploader(fs, output.NewS3Uploader(clients.S3), log)
		if _, err := up.Upload(ctx, archive, opts.S3Bucket, opts.S3Prefix); err != nil {
			log.WithError(err).Error("failed to upload output")
		}
	}
	return 0
}
