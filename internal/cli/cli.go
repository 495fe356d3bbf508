package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vk/mppimport/internal/app"
	"github.com/vk/mppimport/internal/model"
	"github.com/vk/mppimport/internal/publish"
)

// EnvPrefix prefixes every environment variable that provides a flag default.
const EnvPrefix = "MPPIMPORT_"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

func envString(name, fallback string) string {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		return v
	}
	return fallback
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mppimport", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mppimport - Imports the Kotlin multiplatform model of recorded Gradle projects.

Usage:
  mppimport [options] SNAPSHOT_PATH

Arguments:
  SNAPSHOT_PATH
    Path to a single .hcl project snapshot or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	useSSL, err := strconv.ParseBool(envString("S3_USE_SSL", "false"))
	if err != nil {
		return nil, false, usageError("invalid %sS3_USE_SSL: %v", EnvPrefix, err)
	}
	timeout, err := time.ParseDuration(envString("PUBLISH_TIMEOUT", "30s"))
	if err != nil {
		return nil, false, usageError("invalid %sPUBLISH_TIMEOUT: %v", EnvPrefix, err)
	}

	modelFlag := flagSet.String("model", model.Name, "Model type to build.")
	outFlag := flagSet.String("o", envString("OUTPUT", ""), "Write models to this file instead of stdout.")
	publishURLFlag := flagSet.String("publish-url", envString("PUBLISH_URL", ""), "socket.io URL of a model consumer. Empty disables it.")
	publishEventFlag := flagSet.String("publish-event", envString("PUBLISH_EVENT", "model"), "Event the model is emitted on.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", timeout, "How long to wait for the consumer's acknowledgement.")
	s3EndpointFlag := flagSet.String("s3-endpoint", envString("S3_ENDPOINT", ""), "S3-compatible endpoint to upload models to. Empty disables it.")
	s3BucketFlag := flagSet.String("s3-bucket", envString("S3_BUCKET", ""), "Bucket models are uploaded to.")
	s3RegionFlag := flagSet.String("s3-region", envString("S3_REGION", ""), "Bucket region.")
	s3SSLFlag := flagSet.Bool("s3-use-ssl", useSSL, "Use TLS for the S3 endpoint.")
	logFormatFlag := flagSet.String("log-format", envString("LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envString("LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No snapshot path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected one SNAPSHOT_PATH, got %d arguments", flagSet.NArg())
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	config, err := app.NewConfig(app.Config{
		SnapshotPath:   flagSet.Arg(0),
		ModelName:      *modelFlag,
		OutputPath:     *outFlag,
		PublishURL:     *publishURLFlag,
		PublishEvent:   *publishEventFlag,
		PublishTimeout: *publishTimeoutFlag,
		S3: publish.S3Config{
			Endpoint:  *s3EndpointFlag,
			Region:    *s3RegionFlag,
			AccessKey: envString("S3_ACCESS_KEY", ""),
			SecretKey: envString("S3_SECRET_KEY", ""),
			Bucket:    *s3BucketFlag,
			UseSSL:    *s3SSLFlag,
		},
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "snapshot", config.SnapshotPath)
	return config, false, nil
}
