package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexEmbedded(t *testing.T) {
	page := string(Index())
	assert.Contains(t, page, "<title>StockAnalyzer</title>")
	assert.Contains(t, page, "plotly")
	assert.Contains(t, page, "/api/analysis")
	assert.Contains(t, page, "/ws")
}
