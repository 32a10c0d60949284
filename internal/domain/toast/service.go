// internal/domain/toast/service.go
package toast

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-bff/internal/infrastructure/statestore"
)

// Kind classifies a toast
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DismissAfter is the fixed auto-dismiss delay. Every notify resets
// it, so rapid repeated notifications keep a single toast alive.
const DismissAfter = 3 * time.Second

// Toast is the single per-session notification surface. A new notify
// replaces the previous message; there is no queue.
type Toast struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

var fragmentTmpl = template.Must(template.New("toast").Parse(
	`<div class="toast{{if .IsError}} toast--error{{end}}" data-toast role="status">{{.Message}}</div>`))

// Service stores and renders the per-session toast
type Service struct {
	store  statestore.Store
	logger *logrus.Logger
}

// NewService creates a new toast service
func NewService(store statestore.Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Notify replaces the session's toast and resets its dismissal timer.
// Notification is best-effort: a storage failure is logged, never
// returned, since a toast must not fail the action it reports on.
func (s *Service) Notify(ctx context.Context, sessionID, message string, kind Kind) {
	t := Toast{Message: message, Kind: kind}
	if err := s.store.SetJSON(ctx, s.key(sessionID), t, DismissAfter); err != nil {
		s.logger.WithError(err).Warn("Failed to store toast notification")
	}
}

// Current returns the session's visible toast, if any
func (s *Service) Current(ctx context.Context, sessionID string) (*Toast, bool) {
	var t Toast
	ok, err := s.store.GetJSON(ctx, s.key(sessionID), &t)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load toast notification")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &t, true
}

// Fragment renders the session's toast as an HTML fragment, or ""
// when no toast is visible
func (s *Service) Fragment(ctx context.Context, sessionID string) string {
	t, ok := s.Current(ctx, sessionID)
	if !ok {
		return ""
	}

	var buf bytes.Buffer
	err := fragmentTmpl.Execute(&buf, map[string]interface{}{
		"Message": t.Message,
		"IsError": t.Kind == KindError,
	})
	if err != nil {
		s.logger.WithError(err).Warn("Failed to render toast fragment")
		return ""
	}

	return buf.String()
}

func (s *Service) key(sessionID string) string {
	return fmt.Sprintf("toast:%s", sessionID)
}
