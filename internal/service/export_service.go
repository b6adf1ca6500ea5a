package service

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/platform/chrome"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/store"
	"github.com/google/uuid"
)

//go:embed resume.html.tmpl
var resumeTemplateSource string

// resumeTemplate is parsed once at startup; a broken template is a
// programming error.
var resumeTemplate = template.Must(
	template.New("resume").Funcs(template.FuncMap{
		"monthYear": monthYear,
	}).Parse(resumeTemplateSource),
)

// monthYear formats a date range endpoint for the rendered resume.
// A nil date means the entry is ongoing and renders as "Present".
func monthYear(t *time.Time) string {
	if t == nil {
		return "Present"
	}
	return t.Format("Jan 2006")
}

// ExportService renders profiles into downloadable documents.
type ExportService interface {
	// ExportProfilePDF renders the profile as a PDF resume.
	// Returns store.ErrProfileNotFound if the profile does not exist.
	ExportProfilePDF(ctx context.Context, profileID uuid.UUID) ([]byte, error)
}

// exportServiceImpl implements the ExportService interface
type exportServiceImpl struct {
	profileStore store.ProfileStore
	renderer     chrome.Renderer
	logger       *slog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(profileStore store.ProfileStore, renderer chrome.Renderer, log *slog.Logger) (ExportService, error) {
	if profileStore == nil {
		return nil, domain.NewValidationError("profileStore", "cannot be nil", domain.ErrValidation)
	}
	if renderer == nil {
		return nil, domain.NewValidationError("renderer", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &exportServiceImpl{
		profileStore: profileStore,
		renderer:     renderer,
		logger:       log.With(slog.String("component", "export_service")),
	}, nil
}

// ExportProfilePDF implements ExportService.ExportProfilePDF
func (s *exportServiceImpl) ExportProfilePDF(ctx context.Context, profileID uuid.UUID) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to load profile for export",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("failed to export profile: %w", err)
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, profile); err != nil {
		log.Error("failed to render resume template",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("failed to render resume: %w", err)
	}

	pdf, err := s.renderer.RenderPDF(ctx, buf.String())
	if err != nil {
		log.Error("failed to render resume PDF",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, fmt.Errorf("failed to render resume: %w", err)
	}

	log.Info("profile exported",
		slog.String("profile_id", profileID.String()),
		slog.Int("pdf_bytes", len(pdf)))
	return pdf, nil
}
