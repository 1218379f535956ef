// Package app owns scan orchestration: it wires the fetching, analysis and
// estimation collaborators together, runs them as one pipeline per scan, and
// tracks asynchronous scan jobs.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sitelens/sitelens/internal/authority"
	"github.com/sitelens/sitelens/internal/estimate"
	"github.com/sitelens/sitelens/internal/fetcher"
	"github.com/sitelens/sitelens/internal/insight"
	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
	"github.com/sitelens/sitelens/internal/perf"
	"github.com/sitelens/sitelens/internal/seo"
	"github.com/sitelens/sitelens/internal/serp"
	"github.com/sitelens/sitelens/internal/techmatch"
	"github.com/sitelens/sitelens/internal/utils"
	"github.com/sitelens/sitelens/internal/webclient"
)

// serpPositionLookups caps how many keyword candidates get a live position
// check per scan; the free SERP tiers are tiny.
const serpPositionLookups = 5

// Scanner runs complete scans. One Scanner serves many concurrent scans;
// per-scan state lives on the stack of RunScan.
type Scanner struct {
	cfg       *Config
	wc        interfaces.WebClient
	fetcher   *fetcher.Fetcher
	perf      *perf.Client
	authority *authority.Resolver
	serp      *serp.Client
	engine    *estimate.Engine
	insight   *insight.Generator
	store     interfaces.ScanStore
	history   *History
	logger    interfaces.Logger
}

// NewScanner builds a Scanner and its outbound web client from cfg. The
// store and history are owned by the caller; Close only tears down what the
// Scanner created itself.
func NewScanner(cfg *Config, st interfaces.ScanStore, hist *History, logger interfaces.Logger) (*Scanner, error) {
	wc, err := webclient.NewWebClient(cfg.WebClientCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create web client: %w", err)
	}
	return &Scanner{
		cfg:       cfg,
		wc:        wc,
		fetcher:   fetcher.New(wc, logger),
		perf:      perf.NewClient(cfg.PerfCfg, wc, logger),
		authority: authority.NewResolver(cfg.AuthorityCfg, wc, logger),
		serp:      serp.NewClient(cfg.SerpCfg, wc, logger),
		engine:    estimate.NewEngine(logger),
		insight:   insight.NewGenerator(cfg.InsightCfg, wc, logger),
		store:     st,
		history:   hist,
		logger:    logger.With(interfaces.Field{Key: "component", Value: "scanner"}),
	}, nil
}

func (s *Scanner) Close() error {
	return s.wc.Close()
}

// RunScan executes the full pipeline for rawURL and persists the outcome.
// The returned result always has its stored ID set. Scan-level failures
// (bad URL, unreachable site) come back as a persisted error-status result,
// not as an error; the error return is reserved for persistence failures.
// progress, when non-nil, is called as each pipeline stage starts.
func (s *Scanner) RunScan(ctx context.Context, userID, rawURL string, progress func(stage string)) (*model.ScanResult, error) {
	step := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}

	step("resolve")
	target, err := utils.ParseTarget(rawURL)
	if err != nil {
		return s.finish(ctx, userID, &model.ScanResult{
			URL:       rawURL,
			Timestamp: time.Now().UTC(),
			Status:    model.ScanError,
			Error:     err.Error(),
		}, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	pageURL := target.URL.String()
	res := &model.ScanResult{
		URL:       pageURL,
		Domain:    target.Domain,
		Timestamp: time.Now().UTC(),
		Status:    model.ScanScanning,
	}
	log := s.logger.With(interfaces.Field{Key: "domain", Value: target.Domain})

	// Performance, tech detection and SEO signals have no ordering
	// dependency and each tolerates the others failing, so they run as
	// independent branches.
	step("fetch")
	var (
		perfReport *perf.Report
		techPage   *model.Response
		signals    *fetcher.PageSignals
	)
	done := make(chan struct{}, 3)
	go func() {
		perfReport = s.perf.Analyze(ctx, pageURL)
		done <- struct{}{}
	}()
	go func() {
		techPage = s.fetcher.FetchPage(ctx, pageURL)
		done <- struct{}{}
	}()
	go func() {
		signals = s.fetcher.FetchSignals(ctx, pageURL)
		done <- struct{}{}
	}()
	for i := 0; i < 3; i++ {
		<-done
	}

	page := signals.Page
	if page == nil {
		page = techPage
	}
	if page == nil {
		log.Warn("target unreachable")
		res.Status = model.ScanError
		res.Error = fmt.Sprintf("could not fetch %s", pageURL)
		return s.finish(ctx, userID, res, nil)
	}
	snapshot := page.Body

	if techPage != nil {
		res.Tech = techmatch.Match(string(techPage.Body), techPage.Headers)
	} else {
		res.Tech = techmatch.Match(string(page.Body), page.Headers)
	}
	res.SEO = seo.Evaluate(string(page.Body), pageURL, signals.RobotsReachable, signals.SitemapReachable)
	if perfReport != nil {
		res.Performance = &perfReport.Performance
		// The external audit sees things the local heuristics cannot;
		// keep whichever SEO score is higher.
		if perfReport.SEOScore > res.SEO.Score {
			res.SEO.Score = perfReport.SEOScore
		}
	}

	step("authority")
	auth := s.authority.Resolve(ctx, target.Domain)
	res.Authority = &auth

	step("serp")
	brand := utils.Brand(target.Domain)
	hints := s.serp.KeywordCandidates(ctx, brand)
	positions := make(map[string]int)
	if s.serp.HasAPIKey() {
		for i, kw := range hints {
			if i >= serpPositionLookups {
				break
			}
			if pos, ok := s.serp.Position(ctx, kw, target.Domain); ok {
				positions[kw] = pos
			}
		}
	}
	var backlinkHints []estimate.BacklinkHint
	for _, h := range s.serp.BacklinkHints(ctx, target.Domain) {
		backlinkHints = append(backlinkHints, estimate.BacklinkHint{Domain: h.Domain, Title: h.Title})
	}

	step("estimate")
	est := s.engine.Estimate(estimate.Inputs{
		Domain:        target.Domain,
		Authority:     auth,
		KeywordHints:  hints,
		SerpPositions: positions,
		BacklinkHints: backlinkHints,
	}, estimate.NewRand(target.Domain))
	res.Keywords = est.Keywords
	res.Backlinks = est.Backlinks
	res.Traffic = est.Traffic

	for _, domain := range estimate.Competitors(target.Domain) {
		res.Competitors = append(res.Competitors, model.Competitor{Domain: domain})
	}

	res.Status = model.ScanCompleted
	log.Info("scan completed",
		interfaces.Field{Key: "seo_score", Value: res.SEO.Score},
		interfaces.Field{Key: "authority", Value: auth.Score},
	)

	step("persist")
	return s.finish(ctx, userID, res, snapshot)
}

// GenerateInsight produces (or fetches the canned fallback for) the AI
// analysis of a stored scan and attaches it. Attachment is first-wins; a
// second call returns the stored payload untouched.
func (s *Scanner) GenerateInsight(ctx context.Context, scanID string) (*model.Insight, error) {
	scan, err := s.store.GetScan(ctx, scanID)
	if err != nil {
		return nil, err
	}
	if scan.Insight != nil {
		return scan.Insight, nil
	}
	ins := s.insight.Generate(ctx, scan)
	if err := s.store.AttachInsight(ctx, scanID, ins); err != nil {
		return nil, err
	}
	// Lost the attach race: surface whatever won.
	stored, err := s.store.GetScan(ctx, scanID)
	if err != nil {
		return nil, err
	}
	if stored.Insight != nil {
		return stored.Insight, nil
	}
	return ins, nil
}

// finish persists res, stamps its ID and records it in the history ring.
// Persistence uses a background context so a scan that timed out still gets
// its error record written.
func (s *Scanner) finish(ctx context.Context, userID string, res *model.ScanResult, snapshot []byte) (*model.ScanResult, error) {
	saveCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		saveCtx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}
	id, err := s.store.SaveScan(saveCtx, userID, res, snapshot)
	if err != nil {
		s.logger.Error("persist scan", interfaces.Field{Key: "error", Value: err.Error()})
		return res, fmt.Errorf("persist scan: %w", err)
	}
	res.ID = id
	s.history.Push(res)
	return res, nil
}
