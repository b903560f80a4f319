package copyfiles

import (
	"context"

	"github.com/aws/aws-lambda-go/cfn"
	"go.uber.org/zap"
)

// Handler serves the copy-files custom resource.
type Handler struct {
	copier *Copier
	l      *zap.Logger
}

func NewHandler(copier *Copier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{copier: copier, l: logger.Named("handler")}
}

// Handle implements cfn.CustomResourceFunction. Create and Update copy the
// objects, Delete removes them again. An Update also removes the objects the
// previous properties listed and the new ones do not.
func (h *Handler) Handle(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	l := h.l.With(
		zap.String("requestType", string(event.RequestType)),
		zap.String("logicalResourceId", event.LogicalResourceID),
		zap.String("physicalResourceId", event.PhysicalResourceID),
	)

	switch event.RequestType {
	case cfn.RequestDelete:
		if !IsOwnPhysicalID(event.PhysicalResourceID) {
			// the create never succeeded, nothing was copied
			l.Info("skipping delete of a resource this function did not create")
			return event.PhysicalResourceID, nil, nil
		}
		req, err := DecodeRequest(event.ResourceProperties)
		if err != nil {
			l.Warn("cannot decode properties on delete, leaving objects in place", zap.Error(err))
			return event.PhysicalResourceID, nil, nil
		}
		if err := h.copier.Remove(ctx, req); err != nil {
			l.Error("removing objects failed", zap.Error(err))
			return event.PhysicalResourceID, nil, err
		}
		return event.PhysicalResourceID, nil, nil

	default:
		req, err := DecodeRequest(event.ResourceProperties)
		if err != nil {
			l.Error("invalid resource properties", zap.Error(err))
			return event.PhysicalResourceID, nil, err
		}
		copied, err := h.copier.Copy(ctx, req)
		if err != nil {
			l.Error("copying objects failed", zap.Int("copied", copied), zap.Error(err))
			return req.PhysicalResourceID(), nil, err
		}
		l.Info("objects copied", zap.Int("copied", copied))

		if event.RequestType == cfn.RequestUpdate {
			if err := h.removeDropped(ctx, l, req, event.OldResourceProperties); err != nil {
				return req.PhysicalResourceID(), nil, err
			}
		}
		return req.PhysicalResourceID(), map[string]interface{}{"Copied": copied}, nil
	}
}

func (h *Handler) removeDropped(ctx context.Context, l *zap.Logger, req Request, oldProps map[string]interface{}) error {
	prev, err := DecodeRequest(oldProps)
	if err != nil {
		l.Warn("cannot decode previous properties, keeping objects they listed", zap.Error(err))
		return nil
	}

	dropped := req.Dropped(prev)
	if len(dropped.Objects) == 0 {
		return nil
	}
	if err := h.copier.Remove(ctx, dropped); err != nil {
		l.Error("removing dropped objects failed", zap.Error(err))
		return err
	}
	l.Info("dropped objects removed", zap.Strings("objects", dropped.Objects))
	return nil
}
