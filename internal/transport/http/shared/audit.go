package shared

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/DrOksusu/email-automation/internal/requestctx"
)

// Auditor records operator actions.
type Auditor interface {
	Record(ctx context.Context, actor, action, entityType, entityID, requestID, ip string, before, after any) error
}

// Audit records an action for the request. Failures are logged and never
// fail the request.
func Audit(r *http.Request, auditor Auditor, actor, action, entityType, entityID string, before, after any) {
	if auditor == nil {
		return
	}
	requestID := requestctx.GetRequestID(r.Context())
	if err := auditor.Record(r.Context(), actor, action, entityType, entityID, requestID, ClientIP(r), before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "entityId", entityID, "err", err)
	}
}
