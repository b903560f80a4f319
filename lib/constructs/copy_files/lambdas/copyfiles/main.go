package main

import (
	"log"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"github.com/aws-samples/sagemaker-studio-emr/lib/copyfiles"
)

// -------------------------------------------------------------------------------------------------
// Copy Files Lambda
// - backs the custom-copy custom resource of the EMR product
// - Create/Update: copies the bootstrap and step scripts into the sample data bucket
// - Delete: removes them again, the bucket itself is retained
// -------------------------------------------------------------------------------------------------

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func main() {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		log.Fatalf("Error parsing environment: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	sess := session.Must(session.NewSession())
	copier := copyfiles.NewCopier(s3.New(sess), logger)
	handler := copyfiles.NewHandler(copier, logger)

	lambda.Start(cfn.LambdaWrap(handler.Handle))
}
