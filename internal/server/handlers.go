package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"subpage/internal/platform"
)

// passthroughHeaders описывают подписку для клиентов и пересылаются одной строкой, несколько значений склеиваются через запятую.
var passthroughHeaders = []string{
	"Profile-Title",
	"Profile-Update-Interval",
	"Subscription-Userinfo",
	"Profile-Web-Page-Url",
	"Content-Disposition",
}

// responseSkipHeaders не копируются из ответа панели: тело уже распаковано и отдаётся целиком.
var responseSkipHeaders = map[string]struct{}{
	"Connection":        {},
	"Keep-Alive":        {},
	"Transfer-Encoding": {},
	"Content-Encoding":  {},
	"Content-Length":    {},
}

// subscriptionHandler handles GET /{shortId}
func (s *Server) subscriptionHandler(w http.ResponseWriter, r *http.Request) {
	shortID := strings.TrimSpace(mux.Vars(r)["shortId"])
	if shortID == "" {
		badRequestHandler(w, r)
		return
	}

	resp, err := s.panel.Fetch(r.Context(), shortID, r.Header)
	if err != nil {
		s.logger.Errorf("fetch subscription %s: %v", shortID, err)
		http.Error(w, "Request error.", http.StatusInternalServerError)
		return
	}

	if platform.IsBrowser(r.UserAgent()) {
		s.renderPage(w, r, resp)
		return
	}

	header := w.Header()
	for name, values := range resp.Header {
		if _, skip := responseSkipHeaders[http.CanonicalHeaderKey(name)]; skip {
			continue
		}
		for _, value := range values {
			header.Add(name, value)
		}
	}
	for _, name := range passthroughHeaders {
		if values := resp.Header.Values(name); len(values) > 0 {
			header.Set(name, strings.Join(values, ","))
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		s.logger.Debugf("write subscription %s: %v", shortID, err)
	}
}
