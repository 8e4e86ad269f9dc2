package listener

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) BulkUpload(ctx context.Context, rows []sheet.Row) (*model.BulkResult, error) {
	args := m.Called(ctx, rows)
	res, _ := args.Get(0).(*model.BulkResult)
	return res, args.Error(1)
}

// queueReader hands out queued messages, then blocks until ctx ends.
type queueReader struct {
	mu   sync.Mutex
	msgs []kafka.Message
	errs []error
}

func (r *queueReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		r.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(r.msgs) > 0 {
		msg := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func message(t *testing.T, event ImportEvent) kafka.Message {
	t.Helper()
	b, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: b}
}

func TestProcessMessage(t *testing.T) {
	t.Parallel()

	rows := []sheet.Row{{"Product Name": "Dell/Latitude 5420"}}

	tests := []struct {
		name  string
		value func(t *testing.T) []byte
		setup func(products, calcs *mockUploader)
	}{
		{
			name: "routes by kind",
			value: func(t *testing.T) []byte {
				return message(t, ImportEvent{EventID: "e1", Kind: KindPriceCalculations, Rows: rows}).Value
			},
			setup: func(products, calcs *mockUploader) {
				calcs.On("BulkUpload", mock.Anything, rows).Return(&model.BulkResult{Count: 1}, nil).Once()
			},
		},
		{
			name: "upload failure is logged and swallowed",
			value: func(t *testing.T) []byte {
				return message(t, ImportEvent{EventID: "e2", Kind: KindProducts, Rows: rows}).Value
			},
			setup: func(products, calcs *mockUploader) {
				products.On("BulkUpload", mock.Anything, rows).Return(nil, model.ErrNoValidMasterRows).Once()
			},
		},
		{
			name: "unknown kind is ignored",
			value: func(t *testing.T) []byte {
				return message(t, ImportEvent{EventID: "e3", Kind: "invoices", Rows: rows}).Value
			},
		},
		{
			name:  "malformed payload is ignored",
			value: func(t *testing.T) []byte { return []byte("{not json") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			products, calcs := &mockUploader{}, &mockUploader{}
			if tt.setup != nil {
				tt.setup(products, calcs)
			}

			l := NewImportListener(&queueReader{}, map[string]BulkUploader{
				KindProducts:          products,
				KindPriceCalculations: calcs,
			}, logger.NewNop())

			l.processMessage(context.Background(), tt.value(t))

			products.AssertExpectations(t)
			calcs.AssertExpectations(t)
		})
	}
}

func TestStartConsumesUntilCancelled(t *testing.T) {
	t.Parallel()

	rows := []sheet.Row{{"Make": "Dell", "Model": "Latitude 5420"}}
	reader := &queueReader{
		errs: []error{errors.New("broker not available")},
		msgs: []kafka.Message{
			message(t, ImportEvent{EventID: "a", Kind: KindSpareParts, Rows: rows}),
			message(t, ImportEvent{EventID: "b", Kind: KindSpareParts, Rows: rows}),
		},
	}

	done := make(chan struct{}, 2)
	parts := &mockUploader{}
	parts.On("BulkUpload", mock.Anything, rows).
		Run(func(mock.Arguments) { done <- struct{}{} }).
		Return(&model.BulkResult{Count: 1}, nil).Twice()

	l := NewImportListener(reader, map[string]BulkUploader{KindSpareParts: parts}, logger.NewNop())
	l.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(stopped)
	}()

	for range 2 {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for import")
		}
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
	parts.AssertExpectations(t)
}
