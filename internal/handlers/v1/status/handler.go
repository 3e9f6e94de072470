package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/carson-networks/finance-server/internal/logging"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *storage.Storage.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Storage Pinger
}

func NewHandler(storage Pinger) Handler {
	return Handler{Storage: storage}
}

// Handler answers 200 when storage is reachable and 503 when it is not.
func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.Storage != nil {
		ctx, cancel := context.WithTimeout(req.Context(), pingTimeout)
		defer cancel()

		endTimer := logData.AddTiming("pingMs")
		err := h.Storage.Ping(ctx)
		endTimer()
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return fmt.Errorf("status: storage ping: %w", err)
		}
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
