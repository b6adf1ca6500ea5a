package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/service"
)

// PDFHandler serves rendered profile documents.
type PDFHandler struct {
	exportService service.ExportService
	logger        *slog.Logger
}

// NewPDFHandler creates a new PDFHandler.
func NewPDFHandler(exportService service.ExportService, log *slog.Logger) *PDFHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PDFHandler{
		exportService: exportService,
		logger:        log.With(slog.String("component", "pdf_handler")),
	}
}

// ExportProfile handles GET /api/profiles/{id}/pdf. The rendered
// document is returned as an attachment named after the profile ID.
func (h *PDFHandler) ExportProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	pdf, err := h.exportService.ExportProfilePDF(r.Context(), profileID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate PDF")
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Debug("profile exported",
		slog.String("profile_id", profileID.String()),
		slog.Int("bytes", len(pdf)))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "resume-"+profileID.String()+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Error("failed to write PDF response", slog.String("error", err.Error()))
	}
}
