package s3archive

import (
	"context"
	stderrs "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/smithy-go"

	"github.com/olusolaa/hilog/internal/errors"
)

var (
	authErrorCodes = []string{
		"AccessDenied",
		"AuthFailure",
		"ExpiredToken",
		"InvalidAccessKeyId",
		"InvalidClientTokenId",
		"SignatureDoesNotMatch",
		"UnauthorizedOperation",
	}
	notFoundErrorCodes = []string{
		"NoSuchBucket",
		"NoSuchKey",
		"NotFound",
		"ResourceNotFoundException",
	}
)

// HandleAWSError classifies an error returned by an AWS call on resource.
func HandleAWSError(service, resource string, err error, ctx context.Context) error {
	if err == nil {
		return errors.New(errors.CodeInternal, fmt.Sprintf("unexpected nil error in AWS error handler for %s", service))
	}

	if ctx.Err() != nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("context canceled during AWS %s call", service))
	}

	code := ""
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}

	switch {
	case slices.Contains(authErrorCodes, code) || containsAny(err.Error(), authErrorCodes):
		return errors.WrapUserFacing(err, errors.CodePlatformAuthError,
			fmt.Sprintf("AWS authentication error calling %s %s", service, resource),
			"Check the AWS credentials and the bucket policy for the log archive")
	case slices.Contains(notFoundErrorCodes, code) || containsAny(err.Error(), notFoundErrorCodes):
		return errors.Wrap(err, errors.CodeResourceNotFound,
			fmt.Sprintf("%s '%s' not found", service, resource))
	}

	return errors.Wrap(err, errors.CodePlatformAPIError,
		fmt.Sprintf("failed to call %s '%s'", service, resource))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// DefaultErrorHandler implements ErrorHandler with HandleAWSError.
type DefaultErrorHandler struct{}

func (DefaultErrorHandler) Handle(service, operation string, err error, ctx context.Context) error {
	return HandleAWSError(service, operation, err, ctx)
}
