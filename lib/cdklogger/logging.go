package cdklogger

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogInfo adds an INFO level message to the construct's metadata.
// These messages are printed by `cdk synth`.
func LogInfo(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	msg := annotate(scope, constructID, zapcore.InfoLevel, format, args...)
	awscdk.Annotations_Of(scope).AddInfo(jsii.String(msg))
}

// LogWarning adds a WARNING level message to the construct's metadata.
func LogWarning(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	msg := annotate(scope, constructID, zapcore.WarnLevel, format, args...)
	awscdk.Annotations_Of(scope).AddWarning(jsii.String(msg))
}

// LogError adds an ERROR level message to the construct's metadata.
// Error annotations make `cdk synth` fail.
func LogError(scope constructs.Construct, constructID string, format string, args ...interface{}) {
	msg := annotate(scope, constructID, zapcore.ErrorLevel, format, args...)
	awscdk.Annotations_Of(scope).AddError(jsii.String(msg))
}

// annotate formats the message, mirrors it to the global zap logger and
// returns the text to attach to the construct.
func annotate(scope constructs.Construct, constructID string, level zapcore.Level, format string, args ...interface{}) string {
	path := *scope.Node().Path()
	msg := Prefix(path, constructID, fmt.Sprintf(format, args...))

	if ce := zap.L().Check(level, msg); ce != nil {
		ce.Write(zap.String("path", path))
	}
	return msg
}

// Prefix tags msg with constructID, unless the construct path already ends
// with that id (e.g. "/Stack/Construct" and "Construct").
func Prefix(path, constructID, msg string) string {
	if constructID == "" {
		return msg
	}
	if path == "/"+constructID || strings.HasSuffix(path, "/"+constructID) {
		return msg
	}
	return fmt.Sprintf("[%s] %s", constructID, msg)
}
