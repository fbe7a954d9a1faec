package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// settleDelay gives client-side scripts time to build the posting.
const settleDelay = 2 * time.Second

// render loads pageURL in headless Chrome and returns the rendered HTML.
// Chrome or Chromium must be installed.
func render(ctx context.Context, pageURL string, timeout time.Duration, log *zap.Logger) (string, error) {
	log.Debug("starting headless browser", zap.String("url", pageURL))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("chrome: %w", err)
	}

	log.Debug("rendered job page", zap.String("url", pageURL), zap.Int("bytes", len(html)))
	return html, nil
}
