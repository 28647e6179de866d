package validator

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zconst"
)

// MaxSymbolLength bounds user supplied tickers.
const MaxSymbolLength = 32

// MaxDays mirrors the configured upper bound on the lookback window.
const MaxDays = 3650

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.^&:_=-]+$`)

// AnalysisRequest is the user input shared by the HTTP and WebSocket
// endpoints. Days of zero means the configured default.
type AnalysisRequest struct {
	Symbol  string `json:"symbol"`
	Days    int    `json:"days"`
	Refresh bool   `json:"refresh"`
}

var AnalysisShape = zog.Shape{
	"symbol": zog.String().
		Trim().
		Required(zog.Message("symbol is required")).
		Max(MaxSymbolLength, zog.Message("symbol must be at most 32 characters")).
		Match(symbolPattern, zog.Message("symbol contains invalid characters")),
	"days": zog.Int().
		GTE(0, zog.Message("days must not be negative")).
		LTE(MaxDays, zog.Message("days must be at most 3650")),
}

// Issue is one failed rule.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every failed rule of a request.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		msgs[i] = is.Message
	}
	return strings.Join(msgs, "; ")
}

// ValidateAnalysis trims req.Symbol in place and checks req against
// AnalysisShape.
func ValidateAnalysis(req *AnalysisRequest) error {
	req.Symbol = strings.TrimSpace(req.Symbol)
	issues := zog.Struct(AnalysisShape).Validate(req)
	if len(issues) == 0 {
		return nil
	}
	out := &Error{}
	for key, list := range issues {
		if key == zconst.ISSUE_KEY_FIRST {
			continue
		}
		for _, is := range list {
			out.Issues = append(out.Issues, Issue{Field: is.Path, Message: is.Message})
		}
	}
	// map order is random
	sort.SliceStable(out.Issues, func(i, j int) bool { return out.Issues[i].Field < out.Issues[j].Field })
	return out
}
