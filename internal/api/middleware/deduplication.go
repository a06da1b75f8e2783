package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"chef-virtual/internal/infrastructure/config"
	"chef-virtual/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	requestCache = struct {
		sync.RWMutex
		requests map[string]time.Time
	}{
		requests: make(map[string]time.Time),
	}

	cleanupOnce sync.Once
)

func startDeduplicationCleanup(cfg *config.Config) {
	cleanupOnce.Do(func() {
		interval := 10 * time.Minute
		window := 1 * time.Second
		if cfg != nil && cfg.DedupWindow > 0 {
			window = cfg.DedupWindow
		}
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for range ticker.C {
				now := time.Now()
				requestCache.Lock()
				for k, t := range requestCache.requests {
					if now.Sub(t) > 10*window {
						delete(requestCache.requests, k)
					}
				}
				requestCache.Unlock()
			}
		}()
	})
}

// Deduplication drops byte-identical POST bodies seen within the configured
// window. The WhatsApp Cloud API redelivers webhook events until it sees a
// 200, so duplicate deliveries are routine rather than exceptional.
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	startDeduplicationCleanup(cfg)
	return func(c *gin.Context) {
		dedupWindow := 1 * time.Second
		if cfg != nil && cfg.DedupWindow > 0 {
			dedupWindow = cfg.DedupWindow
		}

		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Failed to read request body",
			})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		hash := sha256.Sum256(append([]byte(c.Request.URL.Path+"\n"), body...))
		key := hex.EncodeToString(hash[:])

		now := time.Now()
		requestCache.Lock()
		if seen, ok := requestCache.requests[key]; ok && now.Sub(seen) < dedupWindow {
			requestCache.Unlock()
			common.LogDebug("duplicate request dropped",
				zap.String("path", c.Request.URL.Path),
			)
			// Acknowledge so the sender stops redelivering.
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "duplicate"})
			return
		}
		requestCache.requests[key] = now
		requestCache.Unlock()

		c.Next()
	}
}
