package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"text-to-pdf/internal/domain"
	"text-to-pdf/internal/logging"
	"text-to-pdf/internal/render"
)

type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

type DocumentRenderer interface {
	Render(w io.Writer, title string, lines []string) (render.Document, error)
}

// ConvertService fetches a text object, renders it as a PDF and stores the
// PDF next to the source. It keeps no per-call state.
type ConvertService struct {
	store    ObjectStore
	renderer DocumentRenderer
}

type ConvertOutput struct {
	Bucket         string
	SourceKey      string
	DestinationKey string
	Paragraphs     int
	Pages          int
	Size           int
}

func NewConvertService(store ObjectStore, renderer DocumentRenderer) (*ConvertService, error) {
	if store == nil {
		return nil, errors.New("usecase: object store must not be nil")
	}
	if renderer == nil {
		return nil, errors.New("usecase: renderer must not be nil")
	}
	return &ConvertService{store: store, renderer: renderer}, nil
}

// Convert runs one conversion. Any failure stops the remaining steps; an
// upload failure leaves nothing to clean up because the upload is the last step.
// Every returned error is an *Error.
func (s *ConvertService) Convert(ctx context.Context, in domain.ConversionEvent) (ConvertOutput, error) {
	logger := logging.FromContext(ctx)

	bucket := in.BucketName
	if strings.TrimSpace(bucket) == "" {
		return ConvertOutput{}, newError(ErrorGeneral, "bucket name is missing from event", nil)
	}
	if in.ObjectKey == "" {
		return ConvertOutput{}, newError(ErrorGeneral, "object key is missing from event", nil)
	}
	key, err := DecodeKey(in.ObjectKey)
	if err != nil {
		return ConvertOutput{}, newError(ErrorGeneral, "decode object key", err)
	}
	logger.Info("Conversion requested", "bucket", bucket, "key", key)

	logger.Info("Download started")
	content, err := s.store.Get(ctx, bucket, key)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Source object not found", "bucket", bucket, "key", key)
		return ConvertOutput{}, newError(ErrorGeneral, "source object not found", err)
	}
	if err != nil {
		return ConvertOutput{}, classify("download source object", err)
	}
	logger.Info("Download completed", "bytes", len(content))
	if !utf8.Valid(content) {
		logger.Warn("Source is not valid UTF-8, invalid bytes will be replaced")
	}

	lines := SplitLines(string(content))
	logger.Info("Rendering started", "lines", len(lines))
	var pdf bytes.Buffer
	doc, err := s.renderer.Render(&pdf, key, lines)
	if err != nil {
		return ConvertOutput{}, newError(ErrorConversion, "render document", err)
	}
	logger.Info("Rendering completed", "paragraphs", doc.Paragraphs, "pages", doc.Pages, "bytes", pdf.Len())

	destKey := DestinationKey(key)
	if destKey == key {
		logger.Warn("Source key has no .txt extension, destination overwrites source", "key", key)
	}

	logger.Info("Upload started", "key", destKey)
	if err := s.store.Put(ctx, bucket, destKey, pdf.Bytes(), domain.ContentTypePDF); err != nil {
		return ConvertOutput{}, classify("upload document", err)
	}
	logger.Info("Upload completed", "key", destKey)

	return ConvertOutput{
		Bucket:         bucket,
		SourceKey:      key,
		DestinationKey: destKey,
		Paragraphs:     doc.Paragraphs,
		Pages:          doc.Pages,
		Size:           pdf.Len(),
	}, nil
}

// classify maps a store failure to its error kind: byte transfer failures are
// conversion errors, everything else reaching the store is general.
func classify(reason string, err error) *Error {
	if errors.Is(err, domain.ErrTransfer) {
		return newError(ErrorConversion, reason, err)
	}
	return newError(ErrorGeneral, reason, err)
}
