// Package chrome renders HTML documents to PDF through a headless
// Chromium instance driven over the DevTools protocol.
package chrome

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Renderer converts an HTML document into PDF bytes.
type Renderer interface {
	// RenderPDF renders the given HTML document to a PDF. The context
	// bounds the whole browser interaction.
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// A4 dimensions and resume margins, in inches. Chromium's PrintToPDF
// takes inches; these correspond to 210x297mm paper with 20mm top and
// bottom margins and 15mm side margins.
const (
	paperWidthInches   = 8.27
	paperHeightInches  = 11.69
	marginTopInches    = 0.79
	marginBottomInches = 0.79
	marginLeftInches   = 0.59
	marginRightInches  = 0.59
)

// ChromeRenderer implements Renderer by launching a headless Chromium
// per render. Launch flags disable the sandbox so the renderer works
// inside unprivileged containers.
type ChromeRenderer struct {
	logger  *slog.Logger
	timeout time.Duration
}

// NewChromeRenderer creates a renderer with the given per-render timeout.
func NewChromeRenderer(log *slog.Logger, timeout time.Duration) *ChromeRenderer {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &ChromeRenderer{
		logger:  log.With(slog.String("component", "chrome_renderer")),
		timeout: timeout,
	}
}

// Ensure ChromeRenderer implements Renderer interface
var _ Renderer = (*ChromeRenderer)(nil)

// RenderPDF implements Renderer.RenderPDF
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		setDocumentContent(html),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(marginTopInches).
				WithMarginBottom(marginBottomInches).
				WithMarginLeft(marginLeftInches).
				WithMarginRight(marginRightInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		r.logger.Error("pdf render failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	r.logger.Debug("pdf rendered",
		slog.Int("bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)))
	return pdf, nil
}

// setDocumentContent injects the HTML into the page's main frame, which
// avoids writing the document to disk or serving it over HTTP.
func setDocumentContent(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		frameTree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
	})
}
