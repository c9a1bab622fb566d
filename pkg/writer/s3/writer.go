// Package s3 provides a report.Writer that uploads the results directory
// layout to an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"

	"github.com/specvital/reporter/pkg/report"
)

var _ report.Writer = (*Writer)(nil)

const (
	defaultRegion      = "us-west-2"
	jsonContentType    = "application/json"
	defaultContentType = "application/octet-stream"
)

var ErrBucketRequired = errors.New("bucket is required")

// PutObjectAPI is the subset of *s3.Client the writer uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Bucket       string
	Prefix       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	PathStyle    bool
	// RequestsPerSecond caps PUT requests; zero disables the limit.
	RequestsPerSecond float64
	Burst             int
}

type Writer struct {
	client  PutObjectAPI
	bucket  string
	prefix  string
	limiter *rate.Limiter
}

func NewWriter(client PutObjectAPI, cfg Config) (*Writer, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrBucketRequired
	}
	w := &Writer{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		w.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return w, nil
}

// NewFromConfig builds an S3 client from the default AWS credential chain,
// overridden by any static credentials and endpoint in cfg.
func NewFromConfig(ctx context.Context, cfg Config) (*Writer, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}
	options := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" || cfg.SessionToken != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
	})
	return NewWriter(client, cfg)
}

// Key returns the object key a file name is stored under.
func (w *Writer) Key(name string) string {
	if w.prefix == "" {
		return name
	}
	return path.Join(w.prefix, name)
}

func (w *Writer) WriteResult(ctx context.Context, result *report.TestResult) error {
	return w.putJSON(ctx, report.ResultFileName(result.UUID), result)
}

func (w *Writer) WriteGroup(ctx context.Context, container *report.TestResultContainer) error {
	return w.putJSON(ctx, report.ContainerFileName(container.UUID), container)
}

func (w *Writer) WriteAttachment(ctx context.Context, name string, content []byte) error {
	contentType := defaultContentType
	if ct, ok := report.ContentTypeByExtension(path.Ext(name)); ok {
		contentType = string(ct)
	}
	return w.put(ctx, name, content, contentType)
}

func (w *Writer) WriteEnvironmentInfo(ctx context.Context, info map[string]string) error {
	return w.put(ctx, report.EnvironmentFileName, report.FormatEnvironmentProperties(info), "text/plain; charset=utf-8")
}

func (w *Writer) WriteCategoriesDefinitions(ctx context.Context, categories []report.CategoryDefinition) error {
	if categories == nil {
		categories = []report.CategoryDefinition{}
	}
	return w.putJSON(ctx, report.CategoriesFileName, categories)
}

func (w *Writer) putJSON(ctx context.Context, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return w.put(ctx, name, b, jsonContentType)
}

func (w *Writer) put(ctx context.Context, name string, content []byte, contentType string) error {
	if name == "" || strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: object name %q", report.ErrInvalidInput, name)
	}
	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit %s: %w", name, err)
		}
	}
	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(w.bucket),
		Key:           aws.String(w.Key(name)),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", w.Key(name), err)
	}
	return nil
}
