// Package result holds the outcome of a search and renders it for callers.
package result

import (
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies why a search failed. The zero value means it did not.
type Kind string

const (
	KindNone                Kind = ""
	KindCredentialNotFound  Kind = "credential_not_found"
	KindRateLimited         Kind = "rate_limited"
	KindTransportFailure    Kind = "transport_failure"
	KindRemoteProtocolError Kind = "remote_protocol_error"
	KindTurnBudgetExhausted Kind = "turn_budget_exhausted"
	KindInvalidProjectRoot  Kind = "invalid_project_root"
)

// ErrTurnBudgetExhausted is reported when every turn passed without an answer.
var ErrTurnBudgetExhausted = errors.New("max turns reached without an answer")

// Range is an inclusive, 1-indexed line span.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// File is one relevant file named by the model's answer.
type File struct {
	Path     string  `json:"path"`
	FullPath string  `json:"full_path"`
	Ranges   []Range `json:"ranges"`
}

// Result is what a search hands back to its caller.
type Result struct {
	Files []File

	// Patterns are the distinct search patterns issued during the search.
	Patterns []string

	// RawResponse is the model's free text when it never called a tool.
	RawResponse string

	Err  error
	Kind Kind
}

// Failed builds a Result carrying err.
func Failed(kind Kind, err error) *Result {
	return &Result{Kind: kind, Err: err}
}

var (
	fileElem  = regexp.MustCompile(`(?s)<file\s+path="([^"]+)">(.*?)</file>`)
	rangeElem = regexp.MustCompile(`<range>(\d+)-(\d+)</range>`)
)

// ParseAnswer extracts files and ranges from the answer XML, in the order
// written. Paths are made relative by stripping virtualRoot and joined onto
// root for FullPath. Ranges are kept exactly as given.
func ParseAnswer(xml, root, virtualRoot string) []File {
	var files []File
	for _, m := range fileElem.FindAllStringSubmatch(xml, -1) {
		rel := strings.ReplaceAll(m[1], virtualRoot+"/", "")
		rel = strings.ReplaceAll(rel, virtualRoot, "")

		full := rel
		if !filepath.IsAbs(rel) {
			full = filepath.Join(root, filepath.FromSlash(rel))
		}

		ranges := []Range{}
		for _, r := range rangeElem.FindAllStringSubmatch(m[2], -1) {
			start, err1 := strconv.Atoi(r[1])
			end, err2 := strconv.Atoi(r[2])
			if err1 != nil || err2 != nil {
				continue
			}
			ranges = append(ranges, Range{Start: start, End: end})
		}
		files = append(files, File{Path: rel, FullPath: full, Ranges: ranges})
	}
	return files
}

// Payload is the JSON shape of a Result.
type Payload struct {
	Files       []File   `json:"files"`
	Error       string   `json:"error,omitempty"`
	ErrorKind   Kind     `json:"error_kind,omitempty"`
	RawResponse string   `json:"raw_response,omitempty"`
	Patterns    []string `json:"rg_patterns,omitempty"`
}

// Payload converts r for JSON output.
func (r *Result) Payload() Payload {
	p := Payload{
		Files:       r.Files,
		ErrorKind:   r.Kind,
		RawResponse: r.RawResponse,
		Patterns:    r.Patterns,
	}
	if p.Files == nil {
		p.Files = []File{}
	}
	if r.Err != nil {
		p.Error = r.Err.Error()
	}
	return p
}
