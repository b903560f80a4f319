package product

// PortfolioConfig names the Service Catalog portfolio.
type PortfolioConfig struct {
	DisplayName  string `yaml:"displayName" toml:"displayName" validate:"required"`
	ProviderName string `yaml:"providerName" toml:"providerName" validate:"required"`
}

// ProductConfig names the Service Catalog product and its only version.
type ProductConfig struct {
	Name        string `yaml:"name" toml:"name" validate:"required"`
	Owner       string `yaml:"owner" toml:"owner" validate:"required"`
	VersionName string `yaml:"versionName" toml:"versionName" validate:"required"`
}

// StudioConfig names the SageMaker domain and its user profile.
type StudioConfig struct {
	DomainName      string `yaml:"domainName" toml:"domainName" validate:"required,max=63"`
	UserProfileName string `yaml:"userProfileName" toml:"userProfileName" validate:"required,max=63"`
}

// ExportsConfig holds the CloudFormation export names shared between the main
// stack and the product template. The template resolves them by exact name.
type ExportsConfig struct {
	VpcId         string `yaml:"vpcId" toml:"vpcId" validate:"required"`
	SubnetId      string `yaml:"subnetId" toml:"subnetId" validate:"required"`
	SageMakerSGId string `yaml:"sageMakerSgId" toml:"sageMakerSgId" validate:"required"`
	// The copy-files function is deployed with the main stack, the product
	// only invokes it.
	CopyFilesFunctionArn string `yaml:"copyFilesFunctionArn" toml:"copyFilesFunctionArn" validate:"required"`
	CopyFilesRoleArn     string `yaml:"copyFilesRoleArn" toml:"copyFilesRoleArn" validate:"required"`
}

// SampleDataConfig locates the scripts the EMR cluster runs. They are copied
// from SourceBucket/KeyPrefix into the product's own bucket at deploy time.
type SampleDataConfig struct {
	SourceBucket    string `yaml:"sourceBucket" toml:"sourceBucket" validate:"required"`
	KeyPrefix       string `yaml:"keyPrefix" toml:"keyPrefix" validate:"required,endswith=/"`
	BootstrapScript string `yaml:"bootstrapScript" toml:"bootstrapScript" validate:"required"`
	StepScript      string `yaml:"stepScript" toml:"stepScript" validate:"required"`
}

// Objects are the file names the copy-files function copies, relative to
// KeyPrefix.
func (c SampleDataConfig) Objects() []string {
	return []string{c.BootstrapScript, c.StepScript}
}

// Config is the root of the product config file.
type Config struct {
	Portfolio  PortfolioConfig  `yaml:"portfolio" toml:"portfolio"`
	Product    ProductConfig    `yaml:"product" toml:"product"`
	Studio     StudioConfig     `yaml:"studio" toml:"studio"`
	Exports    ExportsConfig    `yaml:"exports" toml:"exports"`
	SampleData SampleDataConfig `yaml:"sampleData" toml:"sampleData"`
	// Endpoints are interface endpoint service suffixes, e.g. "sagemaker.api".
	Endpoints []string `yaml:"endpoints" toml:"endpoints" validate:"dive,required,hostname_rfc1123"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Portfolio: PortfolioConfig{
			DisplayName:  "SageMaker EMR Product Portfolio",
			ProviderName: "AWS",
		},
		Product: ProductConfig{
			Name:        "SageMaker EMR Product",
			Owner:       "AWS",
			VersionName: "v1",
		},
		Studio: StudioConfig{
			DomainName:      "CDKSample",
			UserProfileName: "cdk-studio-user",
		},
		Exports: ExportsConfig{
			VpcId:         "vpc-id",
			SubnetId:      "subnet-id",
			SageMakerSGId: "sg-id",

			CopyFilesFunctionArn: "copy-files-fn-arn",
			CopyFilesRoleArn:     "copy-files-role-arn",
		},
		SampleData: SampleDataConfig{
			SourceBucket:    "aws-ml-blog",
			KeyPrefix:       "artifacts/sma-milestone1/",
			BootstrapScript: "installpylibs.sh",
			StepScript:      "configurekdc.sh",
		},
		Endpoints: []string{
			"sagemaker.api",
			"sagemaker.runtime",
			"sts",
			"monitoring",
			"logs",
			"ecr.dkr",
			"ecr.api",
		},
	}
}
