package domain

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessUploadReceipt = "receipt uploaded successfully"
	MessageSuccessGetReceipt    = "receipt retrieved successfully"

	MessageFailedUploadReceipt = "failed to upload receipt"
	MessageFailedGetReceipt    = "failed to retrieve receipt"

	ErrReceiptNotFound    = errors.New("receipt not found")
	ErrIngestionFailed    = errors.New("receipt ingestion failed")
	ErrOCRFailed          = errors.New("text recognition failed")
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrEmptyImage         = errors.New("image is empty")
)

const (
	StageDecode  = "decode"
	StageOCR     = "ocr"
	StageArchive = "archive"
	StagePersist = "persist"
)

// IngestionError reports which stage of a receipt upload failed.
// Nothing from the upload is persisted when one is returned.
type IngestionError struct {
	Stage string
	Err   error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("receipt ingestion failed at %s: %v", e.Stage, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

func (e *IngestionError) Is(target error) bool { return target == ErrIngestionFailed }

type (
	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	IngestReceiptResponse struct {
		ReceiptID string         `json:"receipt_id"`
		ImageURL  string         `json:"image_url,omitempty"`
		Items     []ItemResponse `json:"items"`
	}

	ReceiptResponse struct {
		ID         string         `json:"id"`
		Text       string         `json:"text"`
		ImageURL   string         `json:"image_url,omitempty"`
		UploadTime time.Time      `json:"upload_time"`
		Items      []ItemResponse `json:"items"`
	}
)
