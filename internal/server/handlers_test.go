package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/insightexus/site/internal/config"
	"github.com/insightexus/site/internal/contact"
	"github.com/insightexus/site/internal/content"
	"github.com/insightexus/site/internal/models"
	"github.com/insightexus/site/internal/search"
	"github.com/insightexus/site/internal/storage"
	"go.uber.org/zap"
)

const (
	blogJSON = `{"posts": [
  {"slug": "cloud-costs", "title": "Cutting Cloud Costs", "excerpt": "Practical savings", "category": "Cloud", "tags": ["aws"], "visibility": true},
  {"slug": "cloud-security", "title": "Cloud Security", "excerpt": "Hardening", "category": "Cloud", "visibility": true},
  {"slug": "draft", "title": "Draft Cloud", "excerpt": "WIP", "visibility": false}
]}`
	projectsJSON = `{"projects": [
  {"slug": "retail-migration", "title": "Retail Migration", "description": "Moved a retailer to the cloud", "industry": "Retail", "stack": ["AWS"], "services": ["cloud"], "visibility": true,
   "metrics": [{"label": "Uptime", "value": "99.9"}],
   "testimonial": {"visibility": true, "quote": "Great", "author": "A", "role": "CTO", "company": "Retail Co"},
   "seo": {"title": "Retail Migration | InsightExus", "description": "Case study", "openGraph": {"image": "/og/retail.png"}}}
]}`
	servicesJSON = `{"services": [
  {"slug": "cloud", "title": "Cloud Consulting", "description": "Migration and operations", "features": ["migration"], "visibility": true,
   "seo": {"title": "Cloud Consulting | InsightExus", "description": "Cloud services"}},
  {"slug": "bare", "title": "Bare", "description": "No seo block", "visibility": true}
]}`
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []*contact.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg *contact.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testServer struct {
	srv     *Server
	handler http.Handler
	dir     string
	mailer  *recordingMailer
	store   *storage.SQLiteStorage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		content.BlogFile:     blogJSON,
		content.ProjectsFile: projectsJSON,
		content.ServicesFile: servicesJSON,
		content.HomeFile:     `{"seo": {"title": "InsightExus", "description": "Consulting"}}`,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &config.Config{}
	cfg.Content.Directory = dir
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "inquiries.db")
	config.ApplyDefaults(cfg)

	logger := zap.NewNop()
	engine := search.NewEngine(&cfg.Search, logger)
	t.Cleanup(func() { engine.Close() })

	catalog := content.NewCatalog(dir, content.WithLogger(logger))
	err := catalog.Subscribe(context.Background(), func(ctx context.Context, snap *content.Snapshot) error {
		return engine.Rebuild(ctx, snap.Collections())
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := catalog.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	mailer := &recordingMailer{}
	svc := contact.NewService(mailer, cfg.Mail, cfg.Contact, contact.WithStore(store), contact.WithLogger(logger))
	srv := NewServer(engine, catalog, cfg, logger, WithContact(svc), WithInquiryStore(store))
	t.Cleanup(func() { srv.Stop(context.Background()) })

	return &testServer{srv: srv, handler: srv.Handler(), dir: dir, mailer: mailer, store: store}
}

func (ts *testServer) do(t *testing.T, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHandleQuickSearch(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=cloud", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var resp models.SearchResponse
	decode(t, w, &resp)
	if resp.State != models.StateResults {
		t.Errorf("state: got %q", resp.State)
	}
	if resp.Total == 0 || resp.Total > search.MaxResults {
		t.Errorf("total: got %d", resp.Total)
	}
	if resp.Results[0].Kind != models.KindArticle || resp.Results[0].Path != "/blog/cloud-costs" {
		t.Errorf("first hit: got %+v", resp.Results[0])
	}
	for _, h := range resp.Results {
		if h.Identifier == "draft" {
			t.Error("hidden article returned")
		}
	}
}

func TestHandleQuickSearchStates(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		query string
		want  models.SearchState
	}{
		{"", models.StateIdle},
		{"zzz-no-match", models.StateEmpty},
		{"RETAIL", models.StateResults},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			body, _ := json.Marshal(models.SearchQuery{Query: tt.query})
			w := ts.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body)))
			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d", w.Code)
			}
			var resp models.SearchResponse
			decode(t, w, &resp)
			if resp.State != tt.want {
				t.Errorf("state: got %q, want %q", resp.State, tt.want)
			}
		})
	}
}

func TestHandleQuickSearchPostInvalidBody(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader("{")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestHandleFullTextSearch(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/search/fulltext?q=migration&limit=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", w.Code, w.Body.String())
	}
	var resp models.SearchResponse
	decode(t, w, &resp)
	if resp.Total == 0 || resp.Total > 2 {
		t.Errorf("total: got %d", resp.Total)
	}

	for _, target := range []string{
		"/api/v1/search/fulltext",
		"/api/v1/search/fulltext?q=cloud&limit=abc",
		"/api/v1/search/fulltext?q=cloud&fuzzy=maybe",
	} {
		w := ts.do(t, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d", target, w.Code)
		}
	}
}

func TestHandleRelatedArticles(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/content/articles/cloud-costs/related", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Related []models.Article `json:"related"`
	}
	decode(t, w, &out)
	if len(out.Related) == 0 || out.Related[0].Slug == "cloud-costs" {
		t.Errorf("related: got %+v", out.Related)
	}

	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/content/articles/missing/related", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing: status got %d", w.Code)
	}
}

func TestHandleOfferingCaseStudies(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/content/offerings/cloud/case-studies", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		CaseStudies  []models.CaseStudy   `json:"case_studies"`
		Metrics      []models.Metric      `json:"metrics"`
		Testimonials []models.Testimonial `json:"testimonials"`
	}
	decode(t, w, &out)
	if len(out.CaseStudies) != 1 || len(out.Metrics) != 1 || len(out.Testimonials) != 1 {
		t.Errorf("got %d case studies, %d metrics, %d testimonials", len(out.CaseStudies), len(out.Metrics), len(out.Testimonials))
	}

	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/content/offerings/nope/case-studies", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing: status got %d", w.Code)
	}
}

func TestHandleMeta(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		target    string
		wantCode  int
		wantTitle string
	}{
		{"/api/v1/meta/home", http.StatusOK, "InsightExus"},
		{"/api/v1/meta/blog/cloud-costs", http.StatusOK, "Cutting Cloud Costs | InsightExus Blog"},
		{"/api/v1/meta/blog/missing", http.StatusNotFound, "Post Not Found"},
		{"/api/v1/meta/project/retail-migration", http.StatusOK, "Retail Migration | InsightExus"},
		{"/api/v1/meta/projects/missing", http.StatusNotFound, "Project Not Found | InsightExus"},
		{"/api/v1/meta/service/cloud", http.StatusOK, "Cloud Consulting | InsightExus"},
		{"/api/v1/meta/service/bare", http.StatusNotFound, "Service Not Found | InsightExus"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := ts.do(t, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if w.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d", w.Code, tt.wantCode)
			}
			var md struct {
				Title string `json:"title"`
			}
			decode(t, w, &md)
			if md.Title != tt.wantTitle {
				t.Errorf("title: got %q, want %q", md.Title, tt.wantTitle)
			}
		})
	}

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/meta/podcast/x", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown kind: status got %d", w.Code)
	}
}

func TestHandleDebugMeta(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		target   string
		wantCode int
		wantErr  string
	}{
		{"/api/debug/meta/project", http.StatusBadRequest, "missing slug"},
		{"/api/debug/meta/project?slug=nope", http.StatusNotFound, "not found"},
		{"/api/debug/meta/project?slug=retail-migration", http.StatusOK, ""},
		{"/api/debug/meta/service", http.StatusBadRequest, "missing slug"},
		{"/api/debug/meta/service?slug=cloud", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := ts.do(t, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if w.Code != tt.wantCode {
				t.Fatalf("status: got %d, want %d", w.Code, tt.wantCode)
			}
			var out map[string]interface{}
			decode(t, w, &out)
			if tt.wantErr != "" && out["error"] != tt.wantErr {
				t.Errorf("error: got %v", out["error"])
			}
			if tt.wantErr == "" && out["slug"] == nil {
				t.Errorf("preview missing slug: %v", out)
			}
		})
	}
}

func TestHandleSitemap(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("content type: got %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"<urlset", "https://insightexus.com/blog/cloud-costs", "https://insightexus.com/projects/retail-migration"} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

func contactRequest(t *testing.T, fields map[string]string, attachment []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if attachment != nil {
		fw, err := mw.CreateFormFile("attachment", "brief.txt")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(attachment)
	}
	mw.Close()
	r := httptest.NewRequest(http.MethodPost, "/api/contact", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

var validContact = map[string]string{
	"name":    "Ada Lovelace",
	"email":   "ada@example.com",
	"message": "We need help with a migration.",
}

func TestHandleContact(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, contactRequest(t, validContact, []byte("scope: two services")))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	decode(t, w, &out)
	if !out.Success || out.Message != "Emails sent successfully" || out.ID == "" {
		t.Errorf("got %+v", out)
	}
	if len(ts.mailer.sent) != 2 {
		t.Fatalf("sent: got %d messages", len(ts.mailer.sent))
	}
	if len(ts.mailer.sent[0].Attachments) != 1 {
		t.Error("admin notification should carry the attachment")
	}
	inq, err := ts.store.GetInquiry(context.Background(), out.ID)
	if err != nil {
		t.Fatal(err)
	}
	if inq.Status != models.InquirySent {
		t.Errorf("inquiry status: got %q", inq.Status)
	}
}

func TestHandleContactValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, contactRequest(t, map[string]string{"name": "Ada"}, nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]interface{}
	decode(t, w, &out)
	if out["error"] != contact.ErrMissingFields {
		t.Errorf("error: got %v", out["error"])
	}
	if len(ts.mailer.sent) != 0 {
		t.Error("no mail should be sent for invalid input")
	}
}

func TestHandleContactDispatchFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.mailer.err = errors.New("smtp unavailable")

	w := ts.do(t, contactRequest(t, validContact, nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]string
	decode(t, w, &out)
	if out["error"] != "Failed to send email" || out["details"] != "smtp unavailable" {
		t.Errorf("got %v", out)
	}
}

func TestHandleContactRateLimit(t *testing.T) {
	ts := newTestServer(t)

	var last int
	for i := 0; i < 4; i++ {
		w := ts.do(t, contactRequest(t, map[string]string{}, nil))
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("fourth request: got %d, want 429", last)
	}
}

func TestHandleContactDisabled(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.contact = nil

	w := ts.do(t, contactRequest(t, validContact, nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestHandleReload(t *testing.T) {
	ts := newTestServer(t)

	extra := strings.Replace(servicesJSON, `"slug": "bare"`, `"slug": "data", "title": "Data Engineering", "description": "Pipelines"}, {"slug": "bare"`, 1)
	if err := os.WriteFile(filepath.Join(ts.dir, content.ServicesFile), []byte(extra), 0o644); err != nil {
		t.Fatal(err)
	}
	w := ts.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=engineering", nil))
	var resp models.SearchResponse
	decode(t, w, &resp)
	if resp.State != models.StateResults {
		t.Errorf("reloaded offering not searchable: %+v", resp)
	}

	if err := os.WriteFile(filepath.Join(ts.dir, content.BlogFile), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	w = ts.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("broken content: status got %d", w.Code)
	}
	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=cloud", nil))
	decode(t, w, &resp)
	if resp.State != models.StateResults {
		t.Error("previous index should keep serving after a failed reload")
	}
}

func TestHandleStatus(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Records       int            `json:"records"`
		RecordsByKind map[string]int `json:"records_by_kind"`
		Content       struct {
			Loaded   bool `json:"loaded"`
			Articles int  `json:"articles"`
		} `json:"content"`
		Inquiries map[string]int64 `json:"inquiries"`
	}
	decode(t, w, &out)
	// Two visible posts, one case study, two offerings.
	if out.Records != 5 {
		t.Errorf("records: got %d", out.Records)
	}
	if out.RecordsByKind["blog"] != 2 || out.RecordsByKind["service"] != 2 {
		t.Errorf("by kind: got %v", out.RecordsByKind)
	}
	if !out.Content.Loaded || out.Content.Articles != 3 {
		t.Errorf("content: got %+v", out.Content)
	}
	if out.Inquiries == nil {
		t.Error("inquiry counts missing")
	}
}

func TestHandleHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health: got %d", w.Code)
	}
	ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/search?q=cloud", nil))
	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "insightexus_http_requests_total") {
		t.Error("metrics should expose the request counter")
	}
}

func TestHandleListContent(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/content/articles", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("articles: status got %d", w.Code)
	}
	var articles struct {
		Articles []models.Article `json:"articles"`
		Total    int              `json:"total"`
	}
	decode(t, w, &articles)
	if articles.Total != 2 || len(articles.Articles) != 2 {
		t.Fatalf("articles: got %d (%d listed)", articles.Total, len(articles.Articles))
	}
	for _, a := range articles.Articles {
		if a.Slug == "draft" {
			t.Error("hidden article listed")
		}
	}

	w = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/content/offerings", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("offerings: status got %d", w.Code)
	}
	var offerings struct {
		Offerings []models.Offering `json:"offerings"`
		Total     int               `json:"total"`
	}
	decode(t, w, &offerings)
	if offerings.Total != 2 || offerings.Offerings[0].Slug != "cloud" {
		t.Errorf("offerings: got %+v", offerings)
	}
}

func TestHandleFullTextSearchFilters(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/search/fulltext?q=cloud&kind=service", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", w.Code, w.Body.String())
	}
	var resp models.SearchResponse
	decode(t, w, &resp)
	if resp.Total == 0 {
		t.Fatal("expected service hits")
	}
	for _, h := range resp.Results {
		if h.Kind != models.KindOffering {
			t.Errorf("kind filter leaked %q hit %q", h.Kind, h.Identifier)
		}
	}

	for _, target := range []string{
		"/api/v1/search/fulltext?q=cloud&kind=podcast",
		"/api/v1/search/fulltext?q=cloud&fuzziness=3",
		"/api/v1/search/fulltext?q=cloud&fuzziness=x",
	} {
		w := ts.do(t, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d", target, w.Code)
		}
	}
}

func TestHandleStatusFullTextDocuments(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	var out struct {
		FullTextDocuments uint64 `json:"fulltext_documents"`
	}
	decode(t, w, &out)
	if out.FullTextDocuments != 5 {
		t.Errorf("fulltext_documents: got %d, want 5", out.FullTextDocuments)
	}
}

func TestHandleContactURLEncoded(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{}
	for k, v := range validContact {
		form.Set(k, v)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := ts.do(t, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d: %s", w.Code, w.Body.String())
	}
	if len(ts.mailer.sent) != 2 {
		t.Fatalf("sent: got %d messages", len(ts.mailer.sent))
	}
	if len(ts.mailer.sent[0].Attachments) != 0 {
		t.Error("url-encoded posts carry no attachment")
	}
}

func TestHandleInquiries(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, contactRequest(t, validContact, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("contact: status got %d", w.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)

	admin := func(target, token string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		return ts.do(t, r)
	}

	if w := admin("/api/v1/inquiries", "anything"); w.Code != http.StatusForbidden {
		t.Errorf("no token configured: status got %d", w.Code)
	}

	ts.srv.config.Server.AdminToken = "s3cret"
	if w := admin("/api/v1/inquiries", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status got %d", w.Code)
	}
	if w := admin("/api/v1/inquiries", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status got %d", w.Code)
	}

	w = admin("/api/v1/inquiries?limit=10", "s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("list: status got %d: %s", w.Code, w.Body.String())
	}
	var list struct {
		Inquiries []models.Inquiry `json:"inquiries"`
		Limit     int              `json:"limit"`
	}
	decode(t, w, &list)
	if len(list.Inquiries) != 1 || list.Inquiries[0].ID != created.ID || list.Limit != 10 {
		t.Errorf("list: got %+v", list)
	}

	for _, target := range []string{"/api/v1/inquiries?offset=-1", "/api/v1/inquiries?limit=0"} {
		if w := admin(target, "s3cret"); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d", target, w.Code)
		}
	}

	w = admin("/api/v1/inquiries/"+created.ID, "s3cret")
	if w.Code != http.StatusOK {
		t.Fatalf("get: status got %d", w.Code)
	}
	var inq models.Inquiry
	decode(t, w, &inq)
	if inq.Email != "ada@example.com" || inq.Status != models.InquirySent {
		t.Errorf("get: got %+v", inq)
	}

	if w := admin("/api/v1/inquiries/missing", "s3cret"); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status got %d", w.Code)
	}
}
