package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/insightexus/site/internal/contact"
	"github.com/insightexus/site/internal/content"
	"github.com/insightexus/site/internal/models"
	"github.com/insightexus/site/internal/seo"
	"github.com/insightexus/site/internal/storage"
	"go.uber.org/zap"
)

func (s *Server) handleQuickSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.logger.Debug("quick search request", zap.String("query", q))
	respondJSON(w, http.StatusOK, s.engine.Quick(q))
}

func (s *Server) handleQuickSearchPost(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("quick search request", zap.String("query", query.Query))
	respondJSON(w, http.StatusOK, s.engine.Quick(query.Query))
}

func (s *Server) handleFullTextSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := models.SearchQuery{Query: params.Get("q")}
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		query.Limit = n
	}
	if v := params.Get("fuzzy"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid fuzzy flag")
			return
		}
		query.FuzzyEnabled = b
	}
	if v := params.Get("fuzziness"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid fuzziness")
			return
		}
		query.Fuzziness = n
		query.FuzzyEnabled = true
	}
	if v := params.Get("kind"); v != "" {
		kind, err := models.ParseKind(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		query.Kind = kind
	}
	if err := query.Validate(s.config.Search.DefaultLimit, s.config.Search.MaxLimit); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("full-text search request", zap.String("query", query.Query), zap.Int("limit", query.Limit))
	response, err := s.engine.FullText(r.Context(), &query)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles := s.catalog.Snapshot().VisibleArticles()
	respondJSON(w, http.StatusOK, map[string]interface{}{"articles": nonNil(articles), "total": len(articles)})
}

func (s *Server) handleListOfferings(w http.ResponseWriter, r *http.Request) {
	offerings := s.catalog.Snapshot().VisibleOfferings()
	respondJSON(w, http.StatusOK, map[string]interface{}{"offerings": nonNil(offerings), "total": len(offerings)})
}

func (s *Server) handleRelatedArticles(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	related, err := s.catalog.Snapshot().RelatedArticles(slug)
	if errors.Is(err, content.ErrNotFound) {
		respondError(w, http.StatusNotFound, "article not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"slug": slug, "related": related})
}

func (s *Server) handleOfferingCaseStudies(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	snap := s.catalog.Snapshot()
	if _, err := snap.OfferingBySlug(slug); err != nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"slug":         slug,
		"case_studies": nonNil(snap.CaseStudiesByOffering(slug)),
		"metrics":      nonNil(snap.OfferingClientMetrics(slug)),
		"testimonials": nonNil(snap.OfferingTestimonials(slug)),
	})
}

func (s *Server) handleHomeMeta(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, seo.Home(s.catalog.Snapshot().Home))
}

// handleMeta answers with the page metadata, or the not-found metadata and a 404.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	slug := chi.URLParam(r, "slug")
	snap := s.catalog.Snapshot()
	base := s.config.Site.URL

	var (
		md    *seo.Metadata
		found bool
	)
	switch kind {
	case models.KindArticle:
		a, err := snap.ArticleBySlug(slug)
		found = err == nil
		if found {
			md = seo.ForArticle(&a)
		} else {
			md = seo.ForArticle(nil)
		}
	case models.KindCaseStudy:
		cs, err := snap.CaseStudyBySlug(slug)
		found = err == nil && cs.SEO != nil
		if err == nil {
			md = seo.ForCaseStudy(&cs, base)
		} else {
			md = seo.ForCaseStudy(nil, base)
		}
	case models.KindOffering:
		o, err := snap.OfferingBySlug(slug)
		found = err == nil && o.SEO != nil
		if err == nil {
			md = seo.ForOffering(&o, base)
		} else {
			md = seo.ForOffering(nil, base)
		}
	}
	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}
	respondJSON(w, status, md)
}

func (s *Server) handleDebugProjectMeta(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "missing slug")
		return
	}
	cs, err := s.catalog.Snapshot().CaseStudyBySlug(slug)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	respondJSON(w, http.StatusOK, seo.CaseStudyPreview(cs, s.config.Site.URL))
}

func (s *Server) handleDebugServiceMeta(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "missing slug")
		return
	}
	o, err := s.catalog.Snapshot().OfferingBySlug(slug)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	respondJSON(w, http.StatusOK, seo.OfferingPreview(o, s.config.Site.URL))
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if _, err := s.sitemap.Generate().WriteTo(w); err != nil {
		s.logger.Error("sitemap write failed", zap.Error(err))
	}
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.contact == nil {
		respondError(w, http.StatusServiceUnavailable, "contact form not configured")
		return
	}
	maxBytes := s.config.Contact.MaxAttachmentBytes
	// Leave room for the text fields around the attachment.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	multipartForm := true
	err := r.ParseMultipartForm(maxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		// URL-encoded posts carry no attachment.
		multipartForm = false
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "attachment too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	sub := &contact.Submission{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Company: r.FormValue("company"),
		Service: r.FormValue("service"),
		Message: r.FormValue("message"),
	}
	if multipartForm {
		att, status, msg := readAttachment(r, maxBytes)
		if status != 0 {
			respondError(w, status, msg)
			return
		}
		sub.Attachment = att
	}

	inq, err := s.contact.Submit(r.Context(), sub)
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": verr.Message, "fields": verr.Fields})
	case err != nil:
		details := err.Error()
		if errors.Is(err, contact.ErrDispatch) {
			details = unwrapDetails(err)
		}
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to send email", "details": details})
	default:
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Emails sent successfully", "id": inq.ID})
	}
}

// readAttachment returns the optional "attachment" upload. A non-zero status rejects the request.
func readAttachment(r *http.Request, maxBytes int64) (*contact.Attachment, int, string) {
	file, header, err := r.FormFile("attachment")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, 0, ""
	}
	if err != nil {
		return nil, http.StatusBadRequest, "invalid attachment"
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, http.StatusBadRequest, "invalid attachment"
	}
	if int64(len(data)) > maxBytes {
		return nil, http.StatusRequestEntityTooLarge, "attachment too large"
	}
	return &contact.Attachment{Filename: header.Filename, Content: data}, 0, ""
}

// unwrapDetails returns the delivery error without the ErrDispatch prefix.
func unwrapDetails(err error) string {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			if !errors.Is(e, contact.ErrDispatch) {
				return e.Error()
			}
		}
	}
	return err.Error()
}

func (s *Server) handleListInquiries(w http.ResponseWriter, r *http.Request) {
	offset, limit := 0, 50
	params := r.URL.Query()
	if v := params.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = n
	}
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxInquiryPage)
	}
	inquiries, err := s.store.ListInquiries(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("list inquiries failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"inquiries": nonNil(inquiries),
		"offset":    offset,
		"limit":     limit,
	})
}

func (s *Server) handleGetInquiry(w http.ResponseWriter, r *http.Request) {
	inq, err := s.store.GetInquiry(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrInquiryNotFound) {
		respondError(w, http.StatusNotFound, "inquiry not found")
		return
	}
	if err != nil {
		s.logger.Error("get inquiry failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, inq)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Reload(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "reloaded",
		"records": s.engine.Index().Len(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.catalog.Snapshot()
	counts := s.engine.Index().CountByKind()
	resp := map[string]interface{}{
		"records":         s.engine.Index().Len(),
		"records_by_kind": counts,
		"content": map[string]interface{}{
			"directory":    s.catalog.Dir(),
			"loaded":       s.catalog.Loaded(),
			"loaded_at":    snap.LoadedAt,
			"articles":     len(snap.Articles),
			"case_studies": len(snap.CaseStudies),
			"offerings":    len(snap.Offerings),
			"skipped":      snap.Skipped,
		},
		"index_built_at": s.engine.BuiltAt(),
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	}
	if docs, err := s.engine.FullTextDocCount(); err == nil {
		resp["fulltext_documents"] = docs
	} else {
		s.logger.Warn("status: full-text doc count failed", zap.Error(err))
	}
	if s.store != nil {
		inquiries, err := s.store.CountInquiries(r.Context())
		if err != nil {
			s.logger.Error("status: count inquiries failed", zap.Error(err))
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["inquiries"] = inquiries
	}
	if diskBytes, err := storage.DiskUsageBytes(s.catalog.Dir(), s.config.Storage.DatabasePath); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	respondJSON(w, http.StatusOK, resp)
}

const maxInquiryPage = 200

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
