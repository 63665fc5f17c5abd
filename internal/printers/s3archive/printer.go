package s3archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
	apperrors "github.com/olusolaa/hilog/internal/errors"
)

const PrinterTypeS3 = "s3"

const (
	DefaultBatchSize     = 100
	DefaultPrefix        = "hilog"
	DefaultUploadTimeout = 10 * time.Second
	unknownAccount       = "unknown-account"
	contentTypeNDJSON    = "application/x-ndjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Bucket        string        `yaml:"bucket" mapstructure:"bucket" validate:"required"`
	Prefix        string        `yaml:"prefix" mapstructure:"prefix"`
	Region        string        `yaml:"region" mapstructure:"region"`
	BatchSize     int           `yaml:"batch_size" mapstructure:"batch_size" validate:"gte=0"`
	RPS           int           `yaml:"rps" mapstructure:"rps" validate:"gte=0,lte=100"`
	UploadTimeout time.Duration `yaml:"upload_timeout" mapstructure:"upload_timeout"`
}

// Printer buffers records as NDJSON and uploads a batch as one S3 object once
// BatchSize records have accumulated, and on Flush and Close.
type Printer struct {
	config       Config
	s3Client     S3Client
	stsClient    STSClient
	limiter      RateLimiter
	errorHandler ErrorHandler
	logger       ports.Logger
	now          func() time.Time
	newID        func() string

	accMu     sync.Mutex
	accountID string

	mu     sync.Mutex
	buf    bytes.Buffer
	count  int
	closed bool
}

type Option func(*Printer)

func WithS3Client(client S3Client) Option {
	return func(p *Printer) {
		if client != nil {
			p.s3Client = client
		}
	}
}

func WithSTSClient(client STSClient) Option {
	return func(p *Printer) {
		if client != nil {
			p.stsClient = client
		}
	}
}

func WithRateLimiter(limiter RateLimiter) Option {
	return func(p *Printer) {
		if limiter != nil {
			p.limiter = limiter
		}
	}
}

func WithErrorHandler(handler ErrorHandler) Option {
	return func(p *Printer) {
		if handler != nil {
			p.errorHandler = handler
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Printer) {
		if now != nil {
			p.now = now
		}
	}
}

// WithIDGenerator replaces the uuid suffix of object keys.
func WithIDGenerator(fn func() string) Option {
	return func(p *Printer) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// NewPrinterFromEnvironment loads the default AWS configuration chain
// (environment, shared config, instance role) and builds the printer on it.
func NewPrinterFromEnvironment(ctx context.Context, cfg Config, logger ports.Logger, opts ...Option) (*Printer, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigValidation, "failed to load default AWS config")
	}
	return NewPrinter(awsCfg, cfg, logger, opts...)
}

func NewPrinter(awsCfg aws.Config, cfg Config, logger ports.Logger, opts ...Option) (*Printer, error) {
	if logger == nil {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "logger cannot be nil for S3 archive printer")
	}
	if cfg.Bucket == "" {
		return nil, apperrors.NewUserFacing(apperrors.CodeConfigValidation,
			"S3 archive printer requires a bucket", "Set printers.s3.bucket in the configuration")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = DefaultUploadTimeout
	}

	p := &Printer{
		config:       cfg,
		errorHandler: DefaultErrorHandler{},
		logger:       logger.WithFields(map[string]any{"printer": PrinterTypeS3, "bucket": cfg.Bucket}),
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.s3Client == nil {
		p.s3Client = s3.NewFromConfig(awsCfg)
	}
	if p.stsClient == nil {
		p.stsClient = sts.NewFromConfig(awsCfg)
	}
	if p.limiter == nil {
		p.limiter = NewRateLimiter(cfg.RPS, p.logger)
	}
	return p, nil
}

func (p *Printer) Print(record domain.Record) {
	data, err := json.Marshal(record)
	if err != nil {
		p.logger.Warnf(context.Background(), "%v",
			apperrors.Wrap(err, apperrors.CodeSerialization, "failed to encode record for S3 archive"))
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.buf.Write(data)
	p.buf.WriteByte('\n')
	p.count++
	var batch []byte
	if p.count >= p.config.BatchSize {
		batch = p.takeLocked()
	}
	p.mu.Unlock()

	if batch == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.config.UploadTimeout)
	defer cancel()
	if err := p.upload(ctx, batch); err != nil {
		p.logger.Errorf(ctx, err, "Failed to upload log batch")
	}
}

// Flush uploads whatever is buffered. A failed batch is dropped and the
// error returned.
func (p *Printer) Flush(ctx context.Context) error {
	p.mu.Lock()
	batch := p.takeLocked()
	p.mu.Unlock()

	if batch == nil {
		return nil
	}
	return p.upload(ctx, batch)
}

// Close flushes the last batch. Records printed afterwards are dropped.
func (p *Printer) Close() error {
	p.mu.Lock()
	p.closed = true
	batch := p.takeLocked()
	p.mu.Unlock()

	if batch == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.config.UploadTimeout)
	defer cancel()
	return p.upload(ctx, batch)
}

func (p *Printer) takeLocked() []byte {
	if p.count == 0 {
		return nil
	}
	batch := bytes.Clone(p.buf.Bytes())
	p.buf.Reset()
	p.count = 0
	return batch
}

func (p *Printer) upload(ctx context.Context, batch []byte) error {
	accountID, err := p.getAccountID(ctx)
	if err != nil {
		p.logger.Warnf(ctx, "Failed to resolve account ID for log archive key: %v", err)
		accountID = unknownAccount
	}

	key := p.objectKey(accountID)
	if err := p.limiter.Wait(ctx, p.logger); err != nil {
		return apperrors.Wrap(err, apperrors.CodePlatformAPIError, "rate limiter wait failed before PutObject")
	}
	_, err = p.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(batch),
		ContentType: aws.String(contentTypeNDJSON),
	})
	if err != nil {
		return p.errorHandler.Handle("S3", p.config.Bucket+"/"+key, err, ctx)
	}
	p.logger.Debugf(ctx, "Uploaded log batch to s3://%s/%s", p.config.Bucket, key)
	return nil
}

// objectKey is <prefix>/<account>/<yyyy>/<mm>/<dd>/<hhmmss>-<id>.ndjson in UTC.
func (p *Printer) objectKey(accountID string) string {
	t := p.now().UTC()
	return fmt.Sprintf("%s/%s/%s/%s-%s.ndjson",
		p.config.Prefix, accountID, t.Format("2006/01/02"), t.Format("150405"), p.newID())
}

func (p *Printer) getAccountID(ctx context.Context) (string, error) {
	p.accMu.Lock()
	defer p.accMu.Unlock()
	if p.accountID != "" {
		return p.accountID, nil
	}

	if err := p.limiter.Wait(ctx, p.logger); err != nil {
		return "", err
	}
	out, err := p.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", p.errorHandler.Handle("STS", "GetCallerIdentity", err, ctx)
	}
	if out.Account == nil {
		return "", apperrors.New(apperrors.CodePlatformAPIError, "AWS caller identity response did not contain Account ID")
	}
	p.accountID = aws.ToString(out.Account)
	return p.accountID, nil
}
