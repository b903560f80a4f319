package copyfiles

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Copier copies and removes the objects of a Request.
type Copier struct {
	client s3iface.S3API
	l      *zap.Logger
}

func NewCopier(client s3iface.S3API, logger *zap.Logger) *Copier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Copier{client: client, l: logger.Named("copier")}
}

// Copy copies every object of req into the destination bucket, stopping at
// the first failure.
func (c *Copier) Copy(ctx context.Context, req Request) (int, error) {
	for i, key := range req.Keys() {
		source := url.PathEscape(req.SourceBucket + "/" + key)
		c.l.Info("copying object",
			zap.String("source", req.SourceBucket+"/"+key),
			zap.String("destBucket", req.DestBucket))

		_, err := c.client.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
			Bucket:     aws.String(req.DestBucket),
			Key:        aws.String(key),
			CopySource: aws.String(source),
		})
		if err != nil {
			return i, fmt.Errorf("copying s3://%s/%s to bucket %s: %w", req.SourceBucket, key, req.DestBucket, err)
		}
	}
	return len(req.Objects), nil
}

// Remove deletes the copied objects from the destination bucket. The bucket
// itself is retained on stack deletion, only its copied content is cleaned up.
// A bucket that is already gone counts as cleaned up.
func (c *Copier) Remove(ctx context.Context, req Request) error {
	ids := lo.Map(req.Keys(), func(key string, _ int) *s3.ObjectIdentifier {
		return &s3.ObjectIdentifier{Key: aws.String(key)}
	})

	c.l.Info("removing objects", zap.String("destBucket", req.DestBucket), zap.Strings("keys", req.Keys()))

	out, err := c.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(req.DestBucket),
		Delete: &s3.Delete{
			Objects: ids,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchBucket {
			c.l.Warn("destination bucket does not exist, nothing to remove", zap.String("destBucket", req.DestBucket))
			return nil
		}
		return fmt.Errorf("deleting objects from bucket %s: %w", req.DestBucket, err)
	}

	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("deleting %d object(s) from bucket %s failed, first: %s: %s",
			len(out.Errors), req.DestBucket, aws.StringValue(first.Key), aws.StringValue(first.Message))
	}
	return nil
}
