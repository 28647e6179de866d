package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	xsrfCookie = "_xsrf"
	xsrfHeader = "X-XSRF-Token"
)

// RequestID tags every request with an id, reusing the caller's when given.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// ZerologMiddleware writes one access log line per request.
func ZerologMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		query := c.Request.URL.RawQuery

		c.Next()
		latency := time.Since(start)

		evt := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			evt = log.Warn()
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str(requestIDKey, c.GetString(requestIDKey)).
			Msg("HTTP Request")
	}
}

// RecoveryMiddleware turns panics into a 500 response.
func RecoveryMiddleware(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			log.Error().
				Interface("panic", err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str(requestIDKey, c.GetString(requestIDKey)).
				Msg("PANIC_RECOVERED")

			abortProblem(c, http.StatusInternalServerError, "Internal server error")
		}
	}()
	c.Next()
}

// CORS allows cross-origin calls from origins. A "*" entry allows any origin
// without credentials.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader, xsrfHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || containsWildcard(origins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

// XSRF implements the double-submit cookie pattern: every response carries a
// token cookie and unsafe methods must echo it in the X-XSRF-Token header.
func XSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(xsrfCookie)
		if token == "" {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     xsrfCookie,
				Value:    uuid.NewString(),
				Path:     "/",
				SameSite: http.SameSiteStrictMode,
			})
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sent := c.GetHeader(xsrfHeader)
		if token == "" || sent == "" || subtle.ConstantTimeCompare([]byte(token), []byte(sent)) != 1 {
			log.Warn().
				Str("path", c.Request.URL.Path).
				Str(requestIDKey, c.GetString(requestIDKey)).
				Msg("xsrf token mismatch")
			abortProblem(c, http.StatusForbidden, "XSRF token missing or invalid")
			return
		}
		c.Next()
	}
}

// RateLimiter applies a token bucket per client IP. Limiters live in a
// go-cache store so idle clients are forgotten.
func RateLimiter(rps float64, burst int) gin.HandlerFunc {
	limiters := gocache.New(10*time.Minute, 10*time.Minute)
	return func(c *gin.Context) {
		ip := c.ClientIP()

		var limiter *rate.Limiter
		if val, found := limiters.Get(ip); found {
			limiter = val.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			if err := limiters.Add(ip, limiter, gocache.DefaultExpiration); err != nil {
				// another request for this ip won the race
				if val, found := limiters.Get(ip); found {
					limiter = val.(*rate.Limiter)
				}
			}
		}

		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			abortProblem(c, http.StatusTooManyRequests, "Too many requests. Please slow down and try again.")
			return
		}
		c.Next()
	}
}

// problem mirrors the RFC 9457 body huma writes for its own errors.
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func abortProblem(c *gin.Context, status int, detail string) {
	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(status, problem{
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
