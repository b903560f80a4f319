package copyfiles

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type HandlerTestSuite struct {
	suite.Suite
	s3      *fakeS3
	handler *Handler
}

func (s *HandlerTestSuite) SetupTest() {
	logger, err := zap.NewDevelopment()
	s.Require().NoError(err)

	s.s3 = &fakeS3{}
	s.handler = NewHandler(NewCopier(s.s3, logger), logger)
}

func properties() map[string]interface{} {
	return map[string]interface{}{
		"ServiceToken": "arn:aws:lambda:us-east-1:123456789012:function:copy",
		"DestBucket":   "dest",
		"SourceBucket": "aws-ml-blog",
		"Prefix":       "artifacts/sma-milestone1/",
		"Objects":      []interface{}{"installpylibs.sh", "configurekdc.sh"},
	}
}

func (s *HandlerTestSuite) TestCreateCopiesEveryObject() {
	id, data, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:        cfn.RequestCreate,
		ResourceProperties: properties(),
	})
	s.Require().NoError(err)

	s.Equal("copy-files/dest/artifacts/sma-milestone1/", id)
	s.Equal(map[string]interface{}{"Copied": 2}, data)
	s.Require().Len(s.s3.copies, 2)
	s.Equal("dest", aws.StringValue(s.s3.copies[0].Bucket))
	s.Equal("artifacts/sma-milestone1/installpylibs.sh", aws.StringValue(s.s3.copies[0].Key))
	s.Equal("aws-ml-blog%2Fartifacts%2Fsma-milestone1%2Finstallpylibs.sh", aws.StringValue(s.s3.copies[0].CopySource))
	s.Equal("artifacts/sma-milestone1/configurekdc.sh", aws.StringValue(s.s3.copies[1].Key))
	s.Empty(s.s3.deletes)
}

func (s *HandlerTestSuite) TestUpdateKeepsPhysicalID() {
	id, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:        cfn.RequestUpdate,
		PhysicalResourceID: "copy-files/dest/artifacts/sma-milestone1/",
		ResourceProperties: properties(),
	})
	s.Require().NoError(err)
	s.Equal("copy-files/dest/artifacts/sma-milestone1/", id)
	s.Len(s.s3.copies, 2)
}

func (s *HandlerTestSuite) TestUpdateRemovesDroppedObjects() {
	old := properties()
	old["Objects"] = []interface{}{"installpylibs.sh", "configurekdc.sh", "old.sh"}

	_, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:           cfn.RequestUpdate,
		PhysicalResourceID:    "copy-files/dest/artifacts/sma-milestone1/",
		ResourceProperties:    properties(),
		OldResourceProperties: old,
	})
	s.Require().NoError(err)
	s.Len(s.s3.copies, 2)

	s.Require().Len(s.s3.deletes, 1)
	del := s.s3.deletes[0]
	s.Equal("dest", aws.StringValue(del.Bucket))
	s.Require().Len(del.Delete.Objects, 1)
	s.Equal("artifacts/sma-milestone1/old.sh", aws.StringValue(del.Delete.Objects[0].Key))
}

func (s *HandlerTestSuite) TestUpdateToNewDestinationLeavesOldObjects() {
	old := properties()
	old["DestBucket"] = "previous"
	old["Objects"] = []interface{}{"old.sh"}

	_, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:           cfn.RequestUpdate,
		PhysicalResourceID:    "copy-files/previous/artifacts/sma-milestone1/",
		ResourceProperties:    properties(),
		OldResourceProperties: old,
	})
	s.Require().NoError(err)
	s.Empty(s.s3.deletes)
}

func (s *HandlerTestSuite) TestUpdateFailsWhenDroppedObjectsCannotBeRemoved() {
	s.s3.deleteErr = errors.New("access denied")
	old := properties()
	old["Objects"] = []interface{}{"installpylibs.sh", "old.sh"}

	_, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:           cfn.RequestUpdate,
		PhysicalResourceID:    "copy-files/dest/artifacts/sma-milestone1/",
		ResourceProperties:    properties(),
		OldResourceProperties: old,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "access denied")
}

func (s *HandlerTestSuite) TestCreateStopsAtFirstFailure() {
	s.s3.copyErrAt = 1
	s.s3.copyErr = errors.New("access denied")

	_, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:        cfn.RequestCreate,
		ResourceProperties: properties(),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "access denied")
	s.Len(s.s3.copies, 1)
}

func (s *HandlerTestSuite) TestCreateWithInvalidPropertiesFails() {
	_, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:        cfn.RequestCreate,
		ResourceProperties: map[string]interface{}{"DestBucket": "dest"},
	})
	s.Require().ErrorIs(err, ErrInvalidRequest)
	s.Empty(s.s3.copies)
}

func (s *HandlerTestSuite) TestDeleteRemovesCopiedObjects() {
	id, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:        cfn.RequestDelete,
		PhysicalResourceID: "copy-files/dest/artifacts/sma-milestone1/",
		ResourceProperties: properties(),
	})
	s.Require().NoError(err)
	s.Equal("copy-files/dest/artifacts/sma-milestone1/", id)

	s.Require().Len(s.s3.deletes, 1)
	del := s.s3.deletes[0]
	s.Equal("dest", aws.StringValue(del.Bucket))
	s.Require().Len(del.Delete.Objects, 2)
	s.Equal("artifacts/sma-milestone1/installpylibs.sh", aws.StringValue(del.Delete.Objects[0].Key))
	s.True(aws.BoolValue(del.Delete.Quiet))
}

func (s *HandlerTestSuite) TestDeleteOfForeignPhysicalIDIsNoop() {
	id, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:        cfn.RequestDelete,
		PhysicalResourceID: "2024/01/01/[$LATEST]abcdef",
		ResourceProperties: properties(),
	})
	s.Require().NoError(err)
	s.Equal("2024/01/01/[$LATEST]abcdef", id)
	s.Empty(s.s3.deletes)
}

func (s *HandlerTestSuite) TestDeleteWithMissingBucketSucceeds() {
	s.s3.deleteErr = awserr.New(s3.ErrCodeNoSuchBucket, "gone", nil)

	_, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:        cfn.RequestDelete,
		PhysicalResourceID: "copy-files/dest/artifacts/sma-milestone1/",
		ResourceProperties: properties(),
	})
	s.NoError(err)
}

func (s *HandlerTestSuite) TestDeleteReportsPartialFailures() {
	s.s3.deleteOut = &s3.DeleteObjectsOutput{
		Errors: []*s3.Error{{Key: aws.String("artifacts/sma-milestone1/configurekdc.sh"), Message: aws.String("Access Denied")}},
	}

	_, _, err := s.handler.Handle(context.Background(), cfn.Event{
		RequestType:        cfn.RequestDelete,
		PhysicalResourceID: "copy-files/dest/artifacts/sma-milestone1/",
		ResourceProperties: properties(),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "configurekdc.sh: Access Denied")
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
