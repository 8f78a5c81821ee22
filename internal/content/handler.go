package content

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/content/entity"
	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/httpx"
)

type Handler struct {
	svc    *ContentService
	logger *zap.SugaredLogger
}

func NewHandler(svc *ContentService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var b entity.Brief
	if err := httpx.DecodeJSON(r, &b); err != nil {
		httpx.WriteError(w, h.logger, err, "Failed to generate content")
		return
	}
	out, err := h.svc.Generate(r.Context(), b)
	if err != nil {
		httpx.WriteError(w, h.logger, err, "Failed to generate content")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Export renders previously generated content as a text attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var c entity.GeneratedContent
	if err := httpx.DecodeJSON(r, &c); err != nil {
		httpx.WriteError(w, h.logger, err, "export failed")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(RenderText(c)))
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, entity.FormOptions())
}
