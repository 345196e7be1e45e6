package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Expiry-Reminder/domain"
	"Expiry-Reminder/entities"
	"Expiry-Reminder/internal/metrics"
	"Expiry-Reminder/internal/utils/storage"
	"Expiry-Reminder/pkg/item"
	"Expiry-Reminder/pkg/ocr"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		Ingest(ctx context.Context, userID string, image []byte, contentType string) (domain.IngestReceiptResponse, error)
		GetReceipt(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		ocr               ocr.Engine
		extractor         ItemExtractor
		s3                storage.AwsS3
		ocrTimeout        time.Duration
		logger            zerolog.Logger
		now               func() time.Time
	}
)

// NewReceiptService wires the ingestion workflow. s3 may be nil to skip
// archiving uploaded images.
func NewReceiptService(
	receiptRepository ReceiptRepository,
	engine ocr.Engine,
	extractor ItemExtractor,
	s3 storage.AwsS3,
	ocrTimeout time.Duration,
	logger zerolog.Logger,
) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		ocr:               engine,
		extractor:         extractor,
		s3:                s3,
		ocrTimeout:        ocrTimeout,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *receiptService) Ingest(ctx context.Context, userID string, image []byte, contentType string) (domain.IngestReceiptResponse, error) {
	img, err := ocr.Decode(image, contentType)
	if err != nil {
		return domain.IngestReceiptResponse{}, s.fail(domain.StageDecode, err)
	}
	defer func() {
		if err := img.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to remove temp receipt image")
		}
	}()

	rawText, err := s.recognize(ctx, img)
	if err != nil {
		return domain.IngestReceiptResponse{}, s.fail(domain.StageOCR, fmt.Errorf("%w: %v", domain.ErrOCRFailed, err))
	}

	receipt := &entities.Receipt{
		ID:         uuid.New(),
		UserID:     userID,
		Text:       rawText,
		UploadTime: s.now().UTC(),
	}

	var objectKey string
	if s.s3 != nil {
		fileName := fmt.Sprintf("receipt-%s.png", receipt.ID.String())
		objectKey, err = s.s3.UploadFile(ctx, fileName, img.PNG, "image/png", "receipts")
		if err != nil {
			return domain.IngestReceiptResponse{}, s.fail(domain.StageArchive, err)
		}
		receipt.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	extracted := s.extractor.Extract(ctx, rawText)
	items := make([]*entities.Item, 0, len(extracted))
	for _, e := range extracted {
		items = append(items, &entities.Item{
			ID:         uuid.New(),
			Name:       e.Name,
			ExpiryDate: e.ExpiryDate,
		})
	}

	if err := s.receiptRepository.CreateReceiptWithItems(ctx, receipt, items); err != nil {
		if objectKey != "" {
			if delErr := s.s3.DeleteFile(context.WithoutCancel(ctx), objectKey); delErr != nil {
				s.logger.Warn().Err(delErr).Str("object_key", objectKey).Msg("failed to delete archived receipt image")
			}
		}
		return domain.IngestReceiptResponse{}, s.fail(domain.StagePersist, err)
	}

	metrics.ReceiptsIngested.Inc()
	s.logger.Info().
		Str("receipt_id", receipt.ID.String()).
		Str("user_id", userID).
		Int("items", len(items)).
		Msg("receipt ingested")

	return domain.IngestReceiptResponse{
		ReceiptID: receipt.ID.String(),
		ImageURL:  receipt.ImageURL,
		Items:     item.ToItemResponses(items),
	}, nil
}

func (s *receiptService) recognize(ctx context.Context, img *ocr.Image) (string, error) {
	if s.ocr == nil {
		return "", errors.New("no ocr engine configured")
	}
	if s.ocrTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.ocrTimeout)
		defer cancel()
	}
	return s.ocr.Recognize(ctx, img)
}

func (s *receiptService) fail(stage string, err error) error {
	metrics.IngestionFailures.WithLabelValues(stage).Inc()
	s.logger.Error().Err(err).Str("stage", stage).Msg("receipt ingestion failed")
	return &domain.IngestionError{Stage: stage, Err: err}
}

func (s *receiptService) GetReceipt(ctx context.Context, id string, userID string) (domain.ReceiptResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ReceiptResponse{}, domain.ErrParseUUID
	}

	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}

	if receipt.UserID != userID {
		return domain.ReceiptResponse{}, domain.ErrUnauthorizedAccess
	}

	return domain.ReceiptResponse{
		ID:         receipt.ID.String(),
		Text:       receipt.Text,
		ImageURL:   receipt.ImageURL,
		UploadTime: receipt.UploadTime,
		Items:      item.ToItemResponses(receipt.Items),
	}, nil
}
