package analytics

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/ivs-digital/ivsite/page"
)

// Request carries the request facts a view is derived from.
type Request struct {
	IP        string
	UserAgent string
	Referrer  string
	Path      string
	DNT       bool
}

// Recorder turns navigations into stored views.
type Recorder struct {
	store    *Store
	selfHost string
	logf     func(format string, args ...any)
	now      func() time.Time
}

// NewRecorder returns a Recorder writing to store. selfHost lets internal
// referrers be grouped; logf receives write failures and may be nil.
func NewRecorder(store *Store, selfHost string, logf func(format string, args ...any)) *Recorder {
	return &Recorder{store: store, selfHost: selfHost, logf: logf, now: time.Now}
}

// Record stores one view of name for req. Do Not Track requests are skipped.
func (r *Recorder) Record(ctx context.Context, req Request, name string) error {
	if req.DNT {
		return nil
	}
	ts := r.now()
	if IsBot(req.UserAgent) {
		return r.store.RecordBotView(ctx, BotView{
			BotName:   ExtractBotName(req.UserAgent),
			UserAgent: truncate(req.UserAgent, 512),
			Path:      truncate(req.Path, 2048),
			Timestamp: ts,
		})
	}
	browser, os, device := ParseUserAgent(req.UserAgent)
	return r.store.RecordView(ctx, View{
		VisitorID: VisitorID(req.IP, req.UserAgent),
		Page:      name,
		Path:      truncate(req.Path, 2048),
		Referrer:  CleanReferrer(req.Referrer, r.selfHost),
		Browser:   browser,
		OS:        os,
		Device:    device,
		Timestamp: ts,
	})
}

// Listener adapts Record to a page.Router change hook for one request.
func (r *Recorder) Listener(ctx context.Context, req Request) func(page.ID) {
	return func(id page.ID) {
		if !id.Known() {
			return
		}
		if err := r.Record(ctx, req, id.String()); err != nil && r.logf != nil {
			r.logf("analytics: record %s: %v", id, err)
		}
	}
}

// truncate caps s at n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
