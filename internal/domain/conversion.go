package domain

import "errors"

// ContentTypePDF is the content type stored with every rendered document.
const ContentTypePDF = "application/pdf"

// ErrTransfer marks failures while reading or writing object bytes, as opposed
// to failures reaching the store itself.
var ErrTransfer = errors.New("byte transfer failed")

// ErrNotFound marks a source object or bucket that does not exist.
var ErrNotFound = errors.New("object not found")

// ConversionEvent identifies the source object of one conversion.
// ObjectKey is kept exactly as delivered by the notification (URL-encoded).
type ConversionEvent struct {
	BucketName string
	ObjectKey  string
}
