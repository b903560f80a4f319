package product

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestLoad_YAMLOverridesOnlyGivenFields(t *testing.T) {
	path := writeFile(t, "product.yaml", `
studio:
  domainName: analytics
portfolio:
  displayName: Data Science Portfolio
endpoints:
  - sts
  - logs
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "analytics", cfg.Studio.DomainName)
	assert.Equal(t, "cdk-studio-user", cfg.Studio.UserProfileName)
	assert.Equal(t, "Data Science Portfolio", cfg.Portfolio.DisplayName)
	assert.Equal(t, "AWS", cfg.Portfolio.ProviderName)
	assert.Equal(t, []string{"sts", "logs"}, cfg.Endpoints)
	assert.Equal(t, Default().Exports, cfg.Exports)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "product.toml", `
[product]
name = "EMR for Studio"
versionName = "v2"

[exports]
vpcId = "team-vpc-id"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EMR for Studio", cfg.Product.Name)
	assert.Equal(t, "v2", cfg.Product.VersionName)
	assert.Equal(t, "AWS", cfg.Product.Owner)
	assert.Equal(t, "team-vpc-id", cfg.Exports.VpcId)
	assert.Equal(t, "subnet-id", cfg.Exports.SubnetId)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantErrMsg string
	}{
		{
			name:       "unsupported extension",
			file:       "product.json",
			content:    "{}",
			wantErrMsg: "unsupported product config format",
		},
		{
			name:       "malformed yaml",
			file:       "product.yaml",
			content:    "studio: [",
			wantErrMsg: "error unmarshalling product config",
		},
		{
			name:       "cleared required field",
			file:       "product.yaml",
			content:    "product:\n  owner: \"\"\n",
			wantErrMsg: "Owner",
		},
		{
			name:       "prefix without trailing slash",
			file:       "product.yaml",
			content:    "sampleData:\n  keyPrefix: artifacts\n",
			wantErrMsg: "KeyPrefix",
		},
		{
			name:       "bad endpoint",
			file:       "product.yaml",
			content:    "endpoints:\n  - \"not a host\"\n",
			wantErrMsg: "Endpoints[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestLoad_RepositoryProductFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "product.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
