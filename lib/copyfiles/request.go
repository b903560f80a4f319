package copyfiles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// Custom resource property names. The construct and the Lambda must agree on them.
const (
	PropDestBucket   = "DestBucket"
	PropSourceBucket = "SourceBucket"
	PropPrefix       = "Prefix"
	PropObjects      = "Objects"
)

// physicalIDPrefix marks physical ids issued by this function.
const physicalIDPrefix = "copy-files/"

var ErrInvalidRequest = errors.New("invalid copy-files request")

// Request lists the objects to copy from SourceBucket to DestBucket. Both
// sides use the key Prefix+object.
type Request struct {
	DestBucket   string   `mapstructure:"DestBucket"`
	SourceBucket string   `mapstructure:"SourceBucket"`
	Prefix       string   `mapstructure:"Prefix"`
	Objects      []string `mapstructure:"Objects"`
}

// DecodeRequest reads a Request from custom resource properties.
// CloudFormation passes every scalar as a string, so decoding is weakly typed.
// Unknown properties such as ServiceToken are ignored.
func DecodeRequest(props map[string]interface{}) (Request, error) {
	var req Request

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &req,
	})
	if err != nil {
		return Request{}, err
	}
	if err := decoder.Decode(props); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Validate checks that every field needed to build keys is set.
func (r Request) Validate() error {
	var missing []string
	if r.DestBucket == "" {
		missing = append(missing, PropDestBucket)
	}
	if r.SourceBucket == "" {
		missing = append(missing, PropSourceBucket)
	}
	if len(r.Objects) == 0 {
		missing = append(missing, PropObjects)
	}
	if lo.Contains(r.Objects, "") {
		missing = append(missing, PropObjects+" entry")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}

// Keys returns the object keys, in the order given.
func (r Request) Keys() []string {
	return lo.Map(r.Objects, func(obj string, _ int) string {
		return r.Prefix + obj
	})
}

// Dropped returns the objects of prev that r no longer lists. It is empty
// when the two requests address different destinations, since CloudFormation
// deletes the old destination separately.
func (r Request) Dropped(prev Request) Request {
	if prev.PhysicalResourceID() != r.PhysicalResourceID() {
		return Request{}
	}
	prev.Objects = lo.Without(prev.Objects, r.Objects...)
	return prev
}

// PhysicalResourceID stays the same as long as the destination does, so
// updates that only change the object list do not trigger a delete.
func (r Request) PhysicalResourceID() string {
	return physicalIDPrefix + r.DestBucket + "/" + r.Prefix
}

// IsOwnPhysicalID reports whether id was issued by PhysicalResourceID.
// A failed create leaves CloudFormation with some other id.
func IsOwnPhysicalID(id string) bool {
	return strings.HasPrefix(id, physicalIDPrefix)
}
