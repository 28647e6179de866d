package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnalysis_Valid(t *testing.T) {
	cases := []AnalysisRequest{
		{Symbol: "RELIANCE.NS", Days: 60},
		{Symbol: "  NSE:TCS ", Days: 0},
		{Symbol: "^NSEI", Days: 3650},
		{Symbol: "M&M.NS", Days: 1},
		{Symbol: "BRK-B", Days: 365},
	}
	for _, req := range cases {
		r := req
		assert.NoError(t, ValidateAnalysis(&r), "symbol %q", req.Symbol)
		assert.Equal(t, strings.TrimSpace(req.Symbol), r.Symbol)
	}
}

func TestValidateAnalysis_Invalid(t *testing.T) {
	cases := []struct {
		name string
		req  AnalysisRequest
		want string
	}{
		{"empty", AnalysisRequest{Symbol: ""}, "required"},
		{"blank", AnalysisRequest{Symbol: "   "}, "required"},
		{"too long", AnalysisRequest{Symbol: strings.Repeat("A", 33)}, "at most 32"},
		{"characters", AnalysisRequest{Symbol: "TCS;DROP"}, "invalid characters"},
		{"space inside", AnalysisRequest{Symbol: "TATA MOTORS"}, "invalid characters"},
		{"negative days", AnalysisRequest{Symbol: "TCS", Days: -5}, "must not be negative"},
		{"too many days", AnalysisRequest{Symbol: "TCS", Days: 4000}, "3650"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAnalysis(&tc.req)
			require.Error(t, err)

			var verr *Error
			require.True(t, errors.As(err, &verr))
			require.NotEmpty(t, verr.Issues)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateAnalysis_IssuesOrderedByField(t *testing.T) {
	for i := 0; i < 20; i++ {
		req := AnalysisRequest{Symbol: "TCS;DROP", Days: 5000}
		err := ValidateAnalysis(&req)
		require.Error(t, err)

		var verr *Error
		require.True(t, errors.As(err, &verr))
		require.Equal(t, []Issue{
			{Field: "days", Message: "days must be at most 3650"},
			{Field: "symbol", Message: "symbol contains invalid characters"},
		}, verr.Issues)
		assert.Equal(t, "days must be at most 3650; symbol contains invalid characters", err.Error())
	}
}
