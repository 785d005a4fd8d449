// Package server exposes a trained tokenizer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/born-ml/toktokenizer/internal/envconfig"
	"github.com/born-ml/toktokenizer/internal/tokenizer"
	"github.com/born-ml/toktokenizer/internal/version"
)

const (
	requestIDHeader   = "X-Request-ID"
	readHeaderTimeout = 10 * time.Second
)

// Server serves encode and decode requests for one tokenizer. The tokenizer
// is only read, so handlers run concurrently without locking.
type Server struct {
	tok *tokenizer.BasicTokenizer
}

// New returns a server for tok.
func New(tok *tokenizer.BasicTokenizer) *Server {
	return &Server{tok: tok}
}

// GenerateRoutes builds the HTTP handler.
func (s *Server) GenerateRoutes() http.Handler {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"User-Agent",
		"Accept",
		"X-Requested-With",
		requestIDHeader,
	}
	corsConfig.AllowOrigins = envconfig.AllowedOrigins()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		gin.Recovery(),
		cors.New(corsConfig),
		requestIDMiddleware(),
		logMiddleware(),
	)

	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "toktok is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "toktok is running") })
	r.HEAD("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })

	r.GET("/api/info", s.InfoHandler)
	r.POST("/api/encode", s.EncodeHandler)
	r.POST("/api/decode", s.DecodeHandler)
	r.GET("/api/tokens/:id", s.TokenHandler)

	return r
}

// InfoHandler reports the vocabulary size and merge count.
func (s *Server) InfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Name:      s.tok.Name(),
		VocabSize: s.tok.VocabSize(),
		Merges:    s.tok.NumMerges(),
	})
}

// EncodeHandler encodes Text, or every entry of Texts when present.
func (s *Server) EncodeHandler(c *gin.Context) {
	var req EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	if len(req.Texts) > 0 {
		batch := s.tok.EncodeBatch(req.Texts)
		count := 0
		for _, ids := range batch {
			count += len(ids)
		}
		c.JSON(http.StatusOK, EncodeResponse{Batch: batch, Count: count})
		return
	}

	ids, err := s.tok.Encode(req.Text)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, EncodeResponse{Tokens: ids, Count: len(ids)})
}

// DecodeHandler decodes Tokens. Sequences that do not decode to valid text
// are rejected with 400.
func (s *Server) DecodeHandler(c *gin.Context) {
	var req DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	text, err := s.tok.Decode(req.Tokens)
	switch {
	case errors.Is(err, tokenizer.ErrInvalidEncoding):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, DecodeResponse{Text: text})
}

// TokenHandler returns the bytes behind one token ID.
func (s *Server) TokenHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid token id %q", c.Param("id"))})
		return
	}

	b, ok := s.tok.Token(int32(id))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("token %d not found", id)})
		return
	}

	raw := make([]int, len(b))
	for i, v := range b {
		raw[i] = int(v)
	}
	c.JSON(http.StatusOK, TokenResponse{
		ID:    int32(id),
		Bytes: raw,
		Text:  strings.ToValidUTF8(string(b), "�"),
	})
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		slog.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetString(requestIDHeader))
	}
}

// Serve handles requests on ln until ctx is canceled.
func Serve(ctx context.Context, ln net.Listener, tok *tokenizer.BasicTokenizer) error {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Handler:           New(tok).GenerateRoutes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		srv.Close() //nolint:errcheck // Serve reports the shutdown below.
	}()

	slog.Info(fmt.Sprintf("Listening on %s (version %s)", ln.Addr(), version.Version),
		"vocab_size", tok.VocabSize(), "merges", tok.NumMerges())

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
