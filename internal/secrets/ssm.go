package secrets

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go"

	"github.com/jonathan/resume-analyzer/internal/logging"
)

// getParametersLimit is the SSM cap on names per GetParameters call
const getParametersLimit = 10

// ParameterAPI is the subset of the SSM client used by SSMSource
type ParameterAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	GetParameters(ctx context.Context, in *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

// SSMSource reads decrypted SecureString parameters from AWS Systems Manager
// Parameter Store. Lookup failures are logged and reported as absent.
type SSMSource struct {
	client ParameterAPI
}

// NewSSMSource wraps an SSM client
func NewSSMSource(client ParameterAPI) *SSMSource {
	return &SSMSource{client: client}
}

// NewSSMSourceFromConfig builds the SSM client from a loaded AWS config
func NewSSMSourceFromConfig(cfg aws.Config) *SSMSource {
	return NewSSMSource(ssm.NewFromConfig(cfg))
}

// Get fetches a single parameter
func (s *SSMSource) Get(ctx context.Context, name string) (string, bool) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		logLookupError(ctx, err, name)
		return "", false
	}
	if out.Parameter == nil {
		return "", false
	}
	v := strings.TrimSpace(aws.ToString(out.Parameter.Value))
	return v, v != ""
}

// GetMany fetches parameters in batches. Names SSM reports as invalid are
// omitted from the result and logged.
func (s *SSMSource) GetMany(ctx context.Context, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for start := 0; start < len(names); start += getParametersLimit {
		end := min(start+getParametersLimit, len(names))
		batch := names[start:end]

		resp, err := s.client.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          batch,
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			logLookupError(ctx, err, strings.Join(batch, ","))
			continue
		}
		for _, p := range resp.Parameters {
			if v := strings.TrimSpace(aws.ToString(p.Value)); v != "" {
				out[aws.ToString(p.Name)] = v
			}
		}
		if len(resp.InvalidParameters) > 0 {
			logging.Ctx(ctx).Warn().Strs("names", resp.InvalidParameters).Msg("invalid parameters")
		}
	}
	return out
}

func logLookupError(ctx context.Context, err error, name string) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ParameterNotFound" {
		logging.Ctx(ctx).Debug().Str("name", name).Msg("parameter not found")
		return
	}
	logging.Ctx(ctx).Error().Err(err).Str("name", name).Msg("error retrieving parameter")
}
