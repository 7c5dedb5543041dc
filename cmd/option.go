package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/query"
	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/window"
)

// EnvPrefix prefixes the environment variables that back every flag.
const EnvPrefix = "LAMBDA_LOG_COLLECTOR"

const logTimestampFormat = "01/02/2006 03:04:05"

// Options holds CLI options after parsing flags and env defaults.
type Options struct {
	FunctionName string
	Profile      string
	Region       string
	Output       string
	StartTime    string
	EndTime      string
	Pattern      string
	LogLevel     string
	LogFormat    string
	StreamGlob   string
	Query        string
	Compress     bool
	S3Bucket     string
	S3Prefix     string
}

// BindFlags registers the collector flags on fs and binds them, together with
// their environment variables, to v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.StringP("function-name", "f", "", "Lambda function name (i.e. HelloWorld)")
	fs.StringP("profile", "p", "", "AWS profile name (i.e. dev); falls back to AWS_PROFILE")
	fs.StringP("region", "r", "", "AWS region (i.e. eu-west-1); falls back to AWS_REGION")
	fs.StringP("output", "o", "", "Output directory (i.e. /tmp/)")
	fs.StringP("start-time", "s", "", "Start time, "+window.Layout+" in local time (i.e. 2019-10-30T12:00:00)")
	fs.StringP("end-time", "e", "", "End time, "+window.Layout+" in local time (i.e. 2019-10-31T12:00:00)")
	fs.String("pattern", "", "CloudWatch Logs filter pattern (i.e. ERROR)")
	fs.String("log-level", "INFO", "Logging level: INFO, ERROR or DEBUG")
	fs.String("log-format", "text", "Logging format: text or json")
	fs.String("stream-glob", "", "Only collect from log streams whose name matches this glob")
	fs.String("query", "", "JMESPath expression applied to the collected events before writing")
	fs.Bool("compress", false, "Zip the output directory")
	fs.String("s3-bucket", "", "Upload the zipped output to this S3 bucket (implies --compress)")
	fs.String("s3-prefix", "", "Key prefix for the S3 upload")

	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("region", EnvPrefix+"_REGION", "AWS_REGION"); err != nil {
		return err
	}
	return v.BindEnv("profile", EnvPrefix+"_PROFILE", "AWS_PROFILE")
}

// CollectOptions reads the bound flags and environment from v.
func CollectOptions(v *viper.Viper) *Options {
	return &Options{
		FunctionName: v.GetString("function-name"),
		Profile:      v.GetString("profile"),
		Region:       v.GetString("region"),
		Output:       v.GetString("output"),
		StartTime:    v.GetString("start-time"),
		EndTime:      v.GetString("end-time"),
		Pattern:      v.GetString("pattern"),
		LogLevel:     v.GetString("log-level"),
		LogFormat:    v.GetString("log-format"),
		StreamGlob:   v.GetString("stream-glob"),
		Query:        v.GetString("query"),
		Compress:     v.GetBool("compress"),
		S3Bucket:     v.GetString("s3-bucket"),
		S3Prefix:     v.GetString("s3-prefix"),
	}
}

// Validate checks required flags and their relationships.
// Returns an error message and exit code; code 0 means valid.
func (o *Options) Validate() (string, int) {
	required := []struct {
		flag  string
		value string
	}{
		{"--function-name", o.FunctionName},
		{"--profile", o.Profile},
		{"--region", o.Region},
		{"--output", o.Output},
		{"--start-time", o.StartTime},
		{"--end-time", o.EndTime},
		{"--pattern", o.Pattern},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Sprintf("error: %s is required", r.flag), 2
		}
	}
	if _, err := ParseLogLevel(o.LogLevel); err != nil {
		return "error: " + err.Error(), 2
	}
	if o.LogFormat != "text" && o.LogFormat != "json" {
		return fmt.Sprintf("error: --log-format must be text or json, got %q", o.LogFormat), 2
	}
	if _, err := o.CompileStreamGlob(); err != nil {
		return fmt.Sprintf("error: invalid --stream-glob: %v", err), 2
	}
	if _, err := o.CompileQuery(); err != nil {
		return "error: --query: " + err.Error(), 2
	}
	if o.S3Prefix != "" && o.S3Bucket == "" {
		return "error: --s3-prefix requires --s3-bucket", 2
	}
	return "", 0
}

// CompileStreamGlob returns the stream name glob, or nil when unset.
func (o *Options) CompileStreamGlob() (glob.Glob, error) {
	if o.StreamGlob == "" {
		return nil, nil
	}
	return glob.Compile(o.StreamGlob)
}

// CompileQuery returns the logs query, or nil when unset.
func (o *Options) CompileQuery() (*query.Query, error) {
	if o.Query == "" {
		return nil, nil
	}
	return query.Compile(o.Query)
}

// ShouldCompress reports whether the output directory gets zipped.
func (o *Options) ShouldCompress() bool {
	return o.Compress || o.S3Bucket != ""
}

// ResolveTimeWindow parses the start and end timestamps and checks start <= end.
func ResolveTimeWindow(startStr, endStr string) (window.TimeWindow, error) {
	w, err := window.New(startStr, endStr)
	if err != nil {
		return window.TimeWindow{}, err
	}
	if w.Start > w.End {
		return window.TimeWindow{}, ErrStartAfterEnd
	}
	return w, nil
}

// ErrStartAfterEnd represents an invalid time window where start > end.
var ErrStartAfterEnd = &timeRangeError{"start timestamp must be before end timestamp"}

type timeRangeError struct{ s string }

func (e *timeRangeError) Error() string { return e.s }

var logLevels = map[string]logrus.Level{
	"INFO":  logrus.InfoLevel,
	"ERROR": logrus.ErrorLevel,
	"DEBUG": logrus.DebugLevel,
}

// ParseLogLevel maps INFO, ERROR and DEBUG (any case) to logrus levels.
func ParseLogLevel(s string) (logrus.Level, error) {
	if l, ok := logLevels[strings.ToUpper(s)]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("invalid log level %q; valid levels are INFO, ERROR, DEBUG", s)
}

// NewLogger builds the logger handed to every component.
func NewLogger(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: logTimestampFormat,
		})
	}
	return l, nil
}
