package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// Exporter rasterizes an HTML page containing a #card element to PNG.
type Exporter interface {
	Capture(ctx context.Context, html string) ([]byte, error)
}

// ChromeExporter drives a headless Chrome, one browser per capture.
type ChromeExporter struct {
	chromePath string
	timeout    time.Duration
}

func NewChromeExporter(chromePath string, timeout time.Duration) *ChromeExporter {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeExporter{chromePath: chromePath, timeout: timeout}
}

// detectChromePath checks CHROME_PATH first, then common install locations.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

const waitForAssets = `Promise.all([
	document.fonts.ready,
	...Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
		const t = setTimeout(resolve, 5000);
		img.onload = img.onerror = () => { clearTimeout(t); resolve(); };
	}))
]).then(() => true)`

func (e *ChromeExporter) Capture(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("hide-scrollbars", true),
	)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	} else {
		log.Warn("no chrome binary found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var buf []byte
	var ready bool
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(CardWidth, CardHeight, chromedp.EmulateScale(ExportScale)),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#card", chromedp.ByQuery),
		chromedp.Evaluate(waitForAssets, &ready, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.Screenshot("#card", &buf, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome capture: %w", err)
	}
	return buf, nil
}
