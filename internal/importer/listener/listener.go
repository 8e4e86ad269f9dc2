package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Import kinds carried on the imports topic.
const (
	KindProducts          = "products"
	KindSpareParts        = "spare_parts"
	KindPriceCalculations = "price_calculations"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// BulkUploader is implemented by every use case that accepts sheet rows.
type BulkUploader interface {
	BulkUpload(ctx context.Context, rows []sheet.Row) (*model.BulkResult, error)
}

// ImportEvent is one spreadsheet pushed onto the topic by an upstream tool.
type ImportEvent struct {
	EventID string      `json:"event_id"`
	Kind    string      `json:"kind"`
	Rows    []sheet.Row `json:"rows"`
}

type ImportListener struct {
	reader    MessageReader
	uploaders map[string]BulkUploader
	backoff   time.Duration
	logger    logger.ZapLogger
}

func NewImportListener(reader MessageReader, uploaders map[string]BulkUploader, log logger.ZapLogger) *ImportListener {
	return &ImportListener{
		reader:    reader,
		uploaders: uploaders,
		backoff:   time.Second,
		logger:    log,
	}
}

// Start reads until ctx is cancelled. Bad messages are logged and skipped.
func (l *ImportListener) Start(ctx context.Context) {
	l.logger.Info("Starting import Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping import Kafka listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *ImportListener) processMessage(ctx context.Context, value []byte) {
	var event ImportEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal import event", zap.Error(err))
		return
	}

	uploader, ok := l.uploaders[event.Kind]
	if !ok {
		l.logger.Warn("Ignoring import event of unknown kind",
			zap.String("event_id", event.EventID),
			zap.String("kind", event.Kind),
		)
		return
	}

	res, err := uploader.BulkUpload(ctx, event.Rows)
	if err != nil {
		log := l.logger.Error
		if errors.Is(err, model.ErrNoValidRows) || errors.Is(err, model.ErrNoValidMasterRows) {
			log = l.logger.Warn
		}
		log("Failed to import rows",
			zap.String("event_id", event.EventID),
			zap.String("kind", event.Kind),
			zap.Int("rows", len(event.Rows)),
			zap.Error(err),
		)
		return
	}

	l.logger.Info("Imported rows",
		zap.String("event_id", event.EventID),
		zap.String("kind", event.Kind),
		zap.Int("count", res.Count),
		zap.Int("rejected", res.RejectedCount),
	)
}
