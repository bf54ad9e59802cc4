package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Scheme is the location scheme served by S3Source.
const S3Scheme = "s3"

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads s3://bucket/key locations.
type S3Source struct {
	client S3API
	cfg    Config
}

// NewS3 creates an S3Source. Static credentials are used when configured,
// otherwise the default AWS credential chain.
func NewS3(ctx context.Context, cfg Config) (*S3Source, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	var client *s3.Client
	if cfg.AccessKey != "" {
		opts = append(opts, func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		})
		client = s3.New(s3.Options{}, opts...)
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		client = s3.NewFromConfig(awsCfg, opts...)
	}

	return NewS3WithClient(client, cfg), nil
}

// NewS3WithClient creates an S3Source around an existing client.
func NewS3WithClient(client S3API, cfg Config) *S3Source {
	cfg.applyDefaults()
	return &S3Source{client: client, cfg: cfg}
}

// Get downloads the object named by an s3://bucket/key location.
func (s *S3Source) Get(ctx context.Context, location string) (*Object, error) {
	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrReadFailed)
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength > s.cfg.MaxObjectSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, location, *out.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(out.Body, s.cfg.MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	if int64(len(data)) > s.cfg.MaxObjectSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, location)
	}

	name := path.Base(key)
	contentType := TypeByExtension(name)
	if contentType == "" {
		if ct := normalizeMIME(aws.ToString(out.ContentType)); ct != "" && ct != MIMEOctetStream {
			contentType = ct
		} else {
			contentType = sniffMIME(data)
		}
	}

	return &Object{
		Location:    location,
		Name:        name,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func parseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil || !strings.EqualFold(u.Scheme, S3Scheme) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidLocation, location)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidLocation, location)
	}
	return u.Host, key, nil
}

var _ Source = (*S3Source)(nil)
