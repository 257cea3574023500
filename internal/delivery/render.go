package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

const cmPerInch = 2.54

// paper roll width presented to the browser, in centimeters
const renderPaperWidthCM = 8.0

// RenderChannel is the last resort: it loads the generator's styled HTML
// document into a blank headless-browser page and prints it to a PDF in the
// output directory. It has no capability precondition and fails only when
// the browser surface cannot be created.
type RenderChannel struct {
	outputDir string
	timeout   time.Duration
	noSandbox bool
}

func NewRenderChannel(outputDir string, timeout time.Duration, noSandbox bool) *RenderChannel {
	return &RenderChannel{
		outputDir: outputDir,
		timeout:   timeout,
		noSandbox: noSandbox,
	}
}

func (c *RenderChannel) Name() string {
	return "render-fallback"
}

func (c *RenderChannel) Available(ctx context.Context) bool {
	return true
}

func (c *RenderChannel) Attempt(ctx context.Context, p *Payload) Result {
	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return failed(fmt.Errorf("create output dir: %w", err))
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.noSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, c.timeout)
		defer cancel()
	}

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, p.Doc.HTML).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(renderPaperWidthCM/cmPerInch).
				WithPaperHeight(p.Doc.PageHeightCM/cmPerInch).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return failed(fmt.Errorf("render surface: %w", err))
	}

	name := p.Job.ID
	if name == "" {
		name = uuid.NewString()
	}
	path := filepath.Join(c.outputDir, name+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return failed(fmt.Errorf("write rendered document: %w", err))
	}

	return success()
}
