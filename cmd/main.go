package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"text-to-pdf/handler"
	"text-to-pdf/internal/integrations/paramstore"
	"text-to-pdf/internal/localrun"
	"text-to-pdf/internal/logging"
	"text-to-pdf/internal/render"
	"text-to-pdf/internal/storage"
	"text-to-pdf/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	level, err := logging.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		slog.Error("invalid log level", "err", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, level)
	slog.SetDefault(logger)

	paramPrefix := os.Getenv("PARAM_PREFIX")
	debugPort := os.Getenv("LAMBDA_DEBUG_PORT")
	inLambda := os.Getenv("LAMBDA_TASK_ROOT") != ""

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		fatal("failed to load AWS config", err)
	}

	// ---- Rendering settings ----
	opts := render.DefaultOptions()
	if paramPrefix != "" {
		params, err := paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			fatal("failed to create SSM client", err)
		}
		settings, err := params.Settings(ctx, paramPrefix)
		if err != nil {
			fatal("failed to load render settings", err)
		}
		if opts, err = opts.Apply(settings); err != nil {
			fatal("invalid render settings", err)
		}
		logger.Info("render settings loaded", "prefix", paramPrefix, "count", len(settings))
	}

	// ---- Clients ----
	store, err := storage.New(awss3.NewFromConfig(cfg))
	if err != nil {
		fatal("failed to create S3 client", err)
	}
	renderer, err := render.New(opts)
	if err != nil {
		fatal("failed to create renderer", err)
	}

	// ---- Handler ----
	convertService, err := usecase.NewConvertService(store, renderer)
	if err != nil {
		fatal("failed to create convert service", err)
	}

	h, err := handler.NewHandler(convertService, logger)
	if err != nil {
		fatal("failed to create handler", err)
	}

	if inLambda {
		lambda.Start(h.Handle)
		return
	}

	logger.Info("not running in Lambda, serving the handler locally")
	addr := localrun.Addr(debugPort)
	if err := localrun.ListenAndServe(addr, localrun.HandlerFunc[events.S3Event, handler.Response](h.Handle), logger); err != nil {
		fatal("local server stopped", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
