package renderer

// TemplateName represents a known template filename.
type TemplateName string

// Constants for known template filenames.
const (
	TplProductDescription TemplateName = "product_description.txt.tmpl"
	TplS3URI              TemplateName = "s3_uri.tmpl"
)

// ParameterDescriptor is the part of a product parameter the description
// lists. Defined here so the renderer does not depend on config.
type ParameterDescriptor struct {
	Name          string
	Description   string
	Default       string
	AllowedValues []string
}

// ProductDescriptionData holds the data required by TplProductDescription.
type ProductDescriptionData struct {
	ProductName string
	Parameters  []ParameterDescriptor
}

// S3URIData holds the data required by TplS3URI.
type S3URIData struct {
	// BucketVariable is the Fn::Sub variable holding the bucket name.
	BucketVariable string
	// Prefix is the key prefix, with or without surrounding slashes.
	Prefix string
	// File may be empty to address the prefix itself.
	File string
}
