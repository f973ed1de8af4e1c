package dict

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Language describes one supported language and its dictionary file.
type Language struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Filename  string `json:"-"`
	HanScript bool   `json:"han_script"`
}

// Languages is the supported language table, in display order.
// Dictionary files come from the ipa-dict project and live under the
// configured data directory as <code>.json.
var Languages = []Language{
	{Code: "yue", Name: "Cantonese", Filename: "yue.json", HanScript: true},
	{Code: "en_UK", Name: "English (UK)", Filename: "en_UK.json"},
	{Code: "en_US", Name: "English (US)", Filename: "en_US.json"},
	{Code: "eo", Name: "Esperanto", Filename: "eo.json"},
	{Code: "fr_FR", Name: "French (FR)", Filename: "fr_FR.json"},
	{Code: "fr_QC", Name: "French (QC)", Filename: "fr_QC.json"},
	{Code: "ja", Name: "Japanese", Filename: "ja.json"},
	{Code: "zh_hans", Name: "Mandarin (Hans)", Filename: "zh_hans.json", HanScript: true},
	{Code: "zh_hant", Name: "Mandarin (Hant)", Filename: "zh_hant.json", HanScript: true},
	{Code: "fa", Name: "Persian", Filename: "fa.json"},
	{Code: "es_ES", Name: "Spanish (ES)", Filename: "es_ES.json"},
	{Code: "es_MX", Name: "Spanish (MX)", Filename: "es_MX.json"},
}

// LanguageCodes returns the language codes in table order.
func LanguageCodes() []string {
	codes := make([]string, len(Languages))
	for i, l := range Languages {
		codes[i] = l.Code
	}
	return codes
}

// LanguageByCode looks up a language table entry.
func LanguageByCode(code string) (Language, bool) {
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

var (
	// ErrUnknownLanguage means the code is not in the language table.
	ErrUnknownLanguage = errors.New("unknown language code")
	// ErrNotLoaded means the language is known but its dictionary file
	// was missing or unparsable at load time.
	ErrNotLoaded = errors.New("dictionary not loaded")
)

// Dict is an immutable word-to-IPA mapping for one language.
// Entries are never mutated after load, so lookups need no locking.
type Dict struct {
	Lang    Language
	entries map[string]string
}

// New builds a dictionary from an in-memory mapping. The registry uses it
// after parsing a data file; the caller must not mutate entries afterwards.
func New(lang Language, entries map[string]string) *Dict {
	return &Dict{Lang: lang, entries: entries}
}

// Lookup returns the IPA transcription for an orthographic form.
func (d *Dict) Lookup(word string) (string, bool) {
	ipa, ok := d.entries[word]
	return ipa, ok
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

// Registry holds the loaded dictionaries and supports hot reload.
type Registry struct {
	dataDir string
	logger  *log.Logger

	mu    sync.RWMutex
	dicts map[string]*Dict
}

// NewRegistry creates an empty registry reading from dataDir.
func NewRegistry(dataDir string, logger *log.Logger) *Registry {
	return &Registry{
		dataDir: dataDir,
		logger:  logger,
		dicts:   make(map[string]*Dict),
	}
}

// LoadResult reports the outcome of loading one language.
type LoadResult struct {
	Code    string `json:"code"`
	Loaded  bool   `json:"loaded"`
	Entries int    `json:"entries"`
	Error   string `json:"error,omitempty"`
}

// Load reads every dictionary file and swaps in the result. Languages whose
// file is missing or invalid are left unloaded; startup continues without
// them so one absent dictionary does not take down the rest.
func (r *Registry) Load() []LoadResult {
	results := make([]LoadResult, 0, len(Languages))
	dicts := make(map[string]*Dict, len(Languages))

	for _, lang := range Languages {
		d, err := loadFile(lang, filepath.Join(r.dataDir, lang.Filename))
		if err != nil {
			r.logger.Printf("dict: %s: %v", lang.Code, err)
			results = append(results, LoadResult{Code: lang.Code, Error: err.Error()})
			continue
		}
		dicts[lang.Code] = d
		results = append(results, LoadResult{Code: lang.Code, Loaded: true, Entries: d.Len()})
	}

	r.mu.Lock()
	r.dicts = dicts
	r.mu.Unlock()

	return results
}

// Get returns the dictionary for a language code.
func (r *Registry) Get(code string) (*Dict, error) {
	if _, ok := LanguageByCode(code); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}

	r.mu.RLock()
	d, ok := r.dicts[code]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotLoaded, code)
	}
	return d, nil
}

// Loaded reports whether a language's dictionary is available.
func (r *Registry) Loaded(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.dicts[code]
	return ok
}

// Entries returns the entry count for a language, 0 if unloaded.
func (r *Registry) Entries(code string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.dicts[code]; ok {
		return d.Len()
	}
	return 0
}

func loadFile(lang Language, path string) (*Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	return New(lang, entries), nil
}
