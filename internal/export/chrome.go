package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 paper in inches
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// DefaultPDFTimeout bounds one PDF render, including browser startup
const DefaultPDFTimeout = 60 * time.Second

// ChromeRenderer prints HTML to PDF with a headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRenderer struct {
	ExecPath string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewChromeRenderer creates a renderer. An empty execPath lets chromedp find Chrome.
func NewChromeRenderer(execPath string, logger *zap.Logger) *ChromeRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromeRenderer{ExecPath: execPath, Timeout: DefaultPDFTimeout, Logger: logger}
}

// RenderPDF loads html into a blank tab and prints it at A4 size.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	started := time.Now()
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser PDF rendering failed: %w", err)
	}

	r.Logger.Debug("rendered PDF", zap.Int("bytes", len(pdf)), zap.Duration("elapsed", time.Since(started)))
	return pdf, nil
}
