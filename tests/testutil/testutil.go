package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
)

//---------------------------------------------------------------------
// 1. Generic helpers
//---------------------------------------------------------------------

// TmpFile writes content into a file named name under a per-test directory
// and returns its path. The extension selects the product config decoder.
func TmpFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("tmp-file-write: %v", err)
	}
	return path
}

//---------------------------------------------------------------------
// 2. CDK fixtures
//---------------------------------------------------------------------

// skipBundlingKey makes every stack skip asset bundling, the Go Lambda
// is never compiled in unit tests.
const skipBundlingKey = "aws:cdk:bundling-stacks"

// NewApp returns an app that skips bundling, merged with ctx.
func NewApp(t *testing.T, ctx map[string]interface{}) awscdk.App {
	t.Helper()
	merged := map[string]interface{}{skipBundlingKey: []string{}}
	for k, v := range ctx {
		merged[k] = v
	}
	return awscdk.NewApp(&awscdk.AppProps{Context: &merged})
}

// NewStack returns a stack with a fixed environment in an app from NewApp.
func NewStack(t *testing.T, ctx map[string]interface{}) awscdk.Stack {
	t.Helper()
	return awscdk.NewStack(NewApp(t, ctx), jsii.String("TestStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String("123456789012"),
			Region:  jsii.String("us-east-1"),
		},
	})
}

// ProductStackTemplate synthesizes the app holding stack and loads the
// template file of a product stack. Product stacks are assets of their parent,
// not cloud assembly artifacts, so Template_FromStack cannot find them.
func ProductStackTemplate(t *testing.T, stack awscdk.Stack) assertions.Template {
	t.Helper()
	asm := awscdk.Stage_Of(stack).Synth(&awscdk.StageSynthesisOptions{Force: jsii.Bool(true)})

	raw, err := os.ReadFile(filepath.Join(*asm.Directory(), *stack.TemplateFile()))
	if err != nil {
		t.Fatalf("read-product-template: %v", err)
	}
	var tpl map[string]interface{}
	if err := json.Unmarshal(raw, &tpl); err != nil {
		t.Fatalf("parse-product-template: %v", err)
	}
	return assertions.Template_FromJSON(&tpl, nil)
}
