package mocks

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"

	ports "github.com/olusolaa/hilog/internal/core/ports"
)

// MockSTSClient is a mock implementation of the STS client
type MockSTSClient struct {
	mock.Mock
}

func (m *MockSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sts.GetCallerIdentityOutput), args.Error(1)
}

// MockS3Client is a mock implementation of the S3 client. Uploaded bodies are
// kept in Bodies so tests can inspect them after the reader is consumed.
type MockS3Client struct {
	mock.Mock
	Bodies [][]byte
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if params.Body != nil {
		body, _ := io.ReadAll(params.Body)
		m.Bodies = append(m.Bodies, body)
	}
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Wait(ctx context.Context, logger ports.Logger) error {
	return m.Called(ctx, logger).Error(0)
}

// MockLogger is a mock implementation of the Logger interface. Variadic
// arguments are recorded as a single []any.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debugf(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Infof(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Warnf(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Errorf(ctx context.Context, err error, format string, args ...any) {
	m.Called(ctx, err, format, args)
}

func (m *MockLogger) WithFields(fields map[string]any) ports.Logger {
	args := m.Called(fields)
	return args.Get(0).(ports.Logger)
}

// ResetAllMocks clears expectations and recorded calls.
func ResetAllMocks(mocks ...any) {
	for _, m := range mocks {
		switch mockTyped := m.(type) {
		case *MockSTSClient:
			mockTyped.ExpectedCalls = nil
			mockTyped.Calls = nil
		case *MockS3Client:
			mockTyped.ExpectedCalls = nil
			mockTyped.Calls = nil
			mockTyped.Bodies = nil
		case *MockRateLimiter:
			mockTyped.ExpectedCalls = nil
			mockTyped.Calls = nil
		case *MockLogger:
			mockTyped.ExpectedCalls = nil
			mockTyped.Calls = nil
		}
	}
}
