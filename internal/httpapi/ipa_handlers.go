package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lotusfa/ipa-api/internal/dict"
	"github.com/lotusfa/ipa-api/internal/eventlog"
	"github.com/lotusfa/ipa-api/internal/ipa"
)

type translateRequest struct {
	InputString  string `json:"input_string"`
	LangCode     string `json:"lang_code"`
	Format       string `json:"format,omitempty"`
	ShowWordForm bool   `json:"show_word_form,omitempty"`
}

type translateResponse struct {
	IPA        string `json:"ipa"`
	Format     string `json:"format"`
	LangCode   string `json:"lang_code"`
	TokenCount int    `json:"token_count"`
	HitCount   int    `json:"hit_count"`
	MissCount  int    `json:"miss_count"`
}

// translate validates a request and runs it against the registry.
// Shared by the HTTP handler and the websocket endpoint.
func (r *Router) translate(req translateRequest, source string) (translateResponse, int, error) {
	if strings.TrimSpace(req.InputString) == "" {
		return translateResponse{}, http.StatusBadRequest, errors.New("input_string is required")
	}

	format, err := ipa.ParseFormat(req.Format)
	if err != nil {
		return translateResponse{}, http.StatusBadRequest,
			fmt.Errorf("%s, available formats: %s", err, strings.Join(ipa.Formats(), ", "))
	}

	d, err := r.registry.Get(req.LangCode)
	if err != nil {
		if errors.Is(err, dict.ErrNotLoaded) {
			return translateResponse{}, http.StatusServiceUnavailable,
				fmt.Errorf("dictionary for %q is not loaded", req.LangCode)
		}
		return translateResponse{}, http.StatusBadRequest,
			fmt.Errorf("unsupported language code %q, available codes: %s",
				req.LangCode, strings.Join(dict.LanguageCodes(), ", "))
	}

	start := time.Now()
	result := ipa.Translate(d, req.InputString, ipa.Options{
		ShowWordForm: req.ShowWordForm,
		Format:       format,
	})

	r.eventLog.RecordAsync(eventlog.Request{
		LangCode:   req.LangCode,
		Format:     string(format),
		TokenCount: result.Tokens,
		HitCount:   result.Hits,
		MissCount:  result.Misses,
		DurationMs: time.Since(start).Milliseconds(),
		Source:     source,
	})

	return translateResponse{
		IPA:        result.IPA,
		Format:     string(format),
		LangCode:   req.LangCode,
		TokenCount: result.Tokens,
		HitCount:   result.Hits,
		MissCount:  result.Misses,
	}, http.StatusOK, nil
}

// handleTranslate converts an input string to IPA for a given language.
func (r *Router) handleTranslate(w http.ResponseWriter, req *http.Request) {
	var body translateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, status, err := r.translate(body, "http")
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleListLanguages returns every language code the service knows about.
func (r *Router) handleListLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"languages": dict.LanguageCodes(),
	})
}

// handleListFormats enumerates every output format the service can produce.
func (r *Router) handleListFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"formats": ipa.Formats(),
	})
}

type languageDetail struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	HanScript bool   `json:"han_script"`
	Loaded    bool   `json:"loaded"`
	Entries   int    `json:"entries"`
}

// handleLanguageDetails returns per-language load state and entry counts.
func (r *Router) handleLanguageDetails(w http.ResponseWriter, _ *http.Request) {
	details := make([]languageDetail, 0, len(dict.Languages))
	for _, lang := range dict.Languages {
		details = append(details, languageDetail{
			Code:      lang.Code,
			Name:      lang.Name,
			HanScript: lang.HanScript,
			Loaded:    r.registry.Loaded(lang.Code),
			Entries:   r.registry.Entries(lang.Code),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"languages": details})
}
