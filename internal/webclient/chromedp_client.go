package webclient

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
)

// ChromedpClient renders pages in headless Chrome before returning markup.
// SPA-heavy targets expose their framework and analytics signatures only
// after client-side rendering, which plain HTTP fetches miss.
type ChromedpClient struct {
	cfg    Config
	logger interfaces.Logger
}

func NewChromedpClient(cfg Config, logger interfaces.Logger) (*ChromedpClient, error) {
	l := logger.With(interfaces.Field{Key: "component", Value: "webclient-chromedp"})
	l.Info("created chromedp webclient")
	return &ChromedpClient{cfg: cfg, logger: l}, nil
}

// waitNetworkIdle signals once no network request has been in flight for
// idleAfter. Chrome keeps sockets busy well past DOMContentLoaded, so this is
// the closest practical proxy for "the page settled".
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) chan struct{} {
	idleChan := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() { close(idleChan) })
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) == 0 {
				startTimer()
			}
		}
	})

	return idleChan
}

// Do navigates to req.URL, waits for the network to settle and returns the
// rendered outer HTML. Response headers are collected from the main document
// request so header-based signatures still work.
func (cdc *ChromedpClient) Do(ctx context.Context, req *model.Request) (*model.Response, error) {
	timeout := cdc.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(ctx)
	defer browserCancel()

	var (
		headerMu   sync.Mutex
		docHeaders = http.Header{}
		statusCode int64
	)
	chromedp.ListenTarget(browserCtx, func(ev any) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			headerMu.Lock()
			statusCode = resp.Response.Status
			for k, v := range resp.Response.Headers {
				if s, ok := v.(string); ok {
					docHeaders.Set(k, s)
				}
			}
			headerMu.Unlock()
		}
	})

	waitIdle := waitNetworkIdle(browserCtx, 2*time.Second)

	if err := chromedp.Run(browserCtx, chromedp.Navigate(req.URL)); err != nil {
		cdc.logger.Warn("chromedp navigate failed",
			interfaces.Field{Key: "url", Value: req.URL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return nil, err
	}

	select {
	case <-waitIdle:
	case <-browserCtx.Done():
		return nil, browserCtx.Err()
	}

	var html string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return nil, err
	}

	headerMu.Lock()
	defer headerMu.Unlock()
	code := int(statusCode)
	if code == 0 {
		code = http.StatusOK
	}

	return &model.Response{
		Request:    req,
		Body:       []byte(html),
		Headers:    docHeaders,
		StatusCode: code,
		FetchedAt:  time.Now(),
	}, nil
}

// Get is a convenience method for simple GET requests
func (cdc *ChromedpClient) Get(ctx context.Context, url string) (*model.Response, error) {
	return cdc.Do(ctx, &model.Request{Method: http.MethodGet, URL: url})
}

func (cdc *ChromedpClient) Close() error {
	cdc.logger.Info("closing chromedp webclient")
	return nil
}
