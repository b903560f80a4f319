package copyfiles

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// fakeS3 records calls; unimplemented methods panic through the nil interface.
type fakeS3 struct {
	s3iface.S3API

	copies    []*s3.CopyObjectInput
	deletes   []*s3.DeleteObjectsInput
	copyErrAt int // 1-based index of the failing copy, 0 for none
	copyErr   error
	deleteErr error
	deleteOut *s3.DeleteObjectsOutput
}

func (f *fakeS3) CopyObjectWithContext(_ aws.Context, in *s3.CopyObjectInput, _ ...request.Option) (*s3.CopyObjectOutput, error) {
	f.copies = append(f.copies, in)
	if f.copyErrAt == len(f.copies) {
		return nil, f.copyErr
	}
	return &s3.CopyObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectsWithContext(_ aws.Context, in *s3.DeleteObjectsInput, _ ...request.Option) (*s3.DeleteObjectsOutput, error) {
	f.deletes = append(f.deletes, in)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	if f.deleteOut != nil {
		return f.deleteOut, nil
	}
	return &s3.DeleteObjectsOutput{}, nil
}
