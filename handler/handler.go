package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"text-to-pdf/internal/domain"
	"text-to-pdf/internal/logging"
	"text-to-pdf/internal/usecase"
)

const successBody = "File converted and uploaded successfully"

type Converter interface {
	Convert(ctx context.Context, in domain.ConversionEvent) (usecase.ConvertOutput, error)
}

// Response is the function result returned to the invoking platform.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type Handler struct {
	converter Converter
	logger    *slog.Logger
}

// NewHandler builds the S3 event handler. A nil logger means slog.Default.
func NewHandler(c Converter, logger *slog.Logger) (*Handler, error) {
	if c == nil {
		return nil, errors.New("handler: converter must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{converter: c, logger: logger}, nil
}

// Handle converts the object named by the first record of event. Failures are
// reported in the Response; the returned error is always nil so the platform
// does not retry the invocation.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	ctx = h.invocationContext(ctx)
	logger := logging.FromContext(ctx)
	logger.Info("Event received", "event", event)

	in, err := conversionEvent(event)
	if err != nil {
		return errorResponse(logger, err), nil
	}
	if n := len(event.Records); n > 1 {
		logger.Warn("Event has multiple records, only the first is processed", "records", n)
	}

	out, err := h.converter.Convert(ctx, in)
	if err != nil {
		return errorResponse(logger, err), nil
	}

	logger.Info("Conversion succeeded",
		"bucket", out.Bucket,
		"source_key", out.SourceKey,
		"destination_key", out.DestinationKey,
		"paragraphs", out.Paragraphs,
		"pages", out.Pages,
		"bytes", out.Size,
	)
	return Response{StatusCode: http.StatusOK, Body: successBody}, nil
}

func (h *Handler) invocationContext(ctx context.Context) context.Context {
	ctx = logging.ForInvocation(ctx, h.logger)
	if _, ok := lambdacontext.FromContext(ctx); !ok {
		ctx = logging.WithLogger(ctx, logging.FromContext(ctx).With("request_id", newUUID()))
	}
	return ctx
}

// conversionEvent reads the bucket and key of the first record. Further
// records are ignored.
func conversionEvent(event events.S3Event) (domain.ConversionEvent, error) {
	if len(event.Records) == 0 {
		return domain.ConversionEvent{}, &usecase.Error{Kind: usecase.ErrorGeneral, Reason: "event has no records"}
	}
	s3 := event.Records[0].S3
	return domain.ConversionEvent{
		BucketName: s3.Bucket.Name,
		ObjectKey:  s3.Object.Key,
	}, nil
}

// errorResponse maps conversion errors to 500 and everything else to 400.
func errorResponse(logger *slog.Logger, err error) Response {
	status := http.StatusBadRequest
	kind := usecase.ErrorGeneral
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		kind = ucErr.Kind
	}
	switch kind {
	case usecase.ErrorConversion:
		status = http.StatusInternalServerError
		logger.Error("Error during PDF conversion or upload", "kind", kind, "err", err)
	default:
		logger.Error("General error", "kind", kind, "err", err)
	}
	return Response{StatusCode: status, Body: "Error: " + err.Error()}
}

var newUUID = func() string {
	return uuid.NewString()
}
