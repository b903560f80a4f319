// Package renderer loads the text templates embedded under templates/ and
// renders them with sprig functions.
//
// Strings that are long or assembled from several config values (the Service
// Catalog product description, Fn::Sub bodies for S3 artifact URIs) live in
// `.tmpl` files instead of Go string literals.
//
// Example:
//
//	uri, err := renderer.RenderS3URI(renderer.S3URIData{
//	    BucketVariable: "SampleDataBucket",
//	    Prefix:         "artifacts/sma-milestone1/",
//	    File:           "installpylibs.sh",
//	})
//	// uri == "s3://${SampleDataBucket}/artifacts/sma-milestone1/installpylibs.sh"
package renderer
