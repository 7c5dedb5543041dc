package collector

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/pkg/errors"
)

// resultMetadataKey is the SDK response envelope dropped from the output.
const resultMetadataKey = "ResultMetadata"

// FunctionConfiguration fetches the function's current configuration as a
// JSON object, without the SDK response metadata.
func (c *Collector) FunctionConfiguration(ctx context.Context) (map[string]json.RawMessage, error) {
	out, err := c.functions.GetFunctionConfiguration(ctx, &lambda.GetFunctionConfigurationInput{
		FunctionName: aws.String(c.req.FunctionName),
	})
	if err != nil {
		return nil, &ProviderError{Op: "GetFunctionConfiguration", Err: err}
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "marshal function configuration")
	}
	cfg := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode function configuration")
	}
	delete(cfg, resultMetadataKey)
	return cfg, nil
}
