package backoffice

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/ashendes/jewelry-admin/internal/metrics"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const serviceName = "backoffice-api"

// Chaos injects failures and latency into API requests so the console's
// circuit breaker and error paths can be exercised
type Chaos struct {
	mu          sync.RWMutex
	enabled     bool
	slow        bool
	failureRate float64
	chance      func() float64
	delay       func() time.Duration
	sleep       func(time.Duration)
}

// NewChaos creates disabled chaos toggles failing failureRate of requests when enabled
func NewChaos(failureRate float64) *Chaos {
	return &Chaos{
		failureRate: failureRate,
		chance:      rand.Float64,
		delay: func() time.Duration {
			return time.Duration(2000+rand.Intn(3000)) * time.Millisecond
		},
		sleep: time.Sleep,
	}
}

// SetEnabled toggles random failures
func (c *Chaos) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
	metrics.ChaosFailureRate.WithLabelValues(serviceName).Set(boolGauge(enabled))
}

// Enabled reports whether random failures are on
func (c *Chaos) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// SetSlow toggles added latency
func (c *Chaos) SetSlow(enabled bool) {
	c.mu.Lock()
	c.slow = enabled
	c.mu.Unlock()
	metrics.ChaosSlowMode.WithLabelValues(serviceName).Set(boolGauge(enabled))
}

// Slow reports whether added latency is on
func (c *Chaos) Slow() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slow
}

// Middleware delays or fails requests according to the toggles
func (c *Chaos) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c.Slow() {
			d := c.delay()
			log.WithField("delay_ms", d.Milliseconds()).Debug("Chaos: Simulating slow response")
			c.sleep(d)
		}

		if c.Enabled() && c.chance() < c.failureRate {
			log.WithField("path", ctx.Request.URL.Path).Warn("Chaos: Simulated failure")
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"message": "Service temporarily unavailable",
				"error":   "chaos failure",
			})
			return
		}
		ctx.Next()
	}
}

func (c *Chaos) register(r gin.IRoutes) {
	r.POST("/chaos/enable", func(ctx *gin.Context) {
		c.SetEnabled(true)
		log.Info("Chaos mode ENABLED")
		ctx.JSON(http.StatusOK, gin.H{"message": "Chaos mode enabled", "failureRate": c.failureRate})
	})
	r.POST("/chaos/disable", func(ctx *gin.Context) {
		c.SetEnabled(false)
		c.SetSlow(false)
		log.Info("Chaos mode DISABLED")
		ctx.JSON(http.StatusOK, gin.H{"message": "Chaos mode disabled"})
	})
	r.POST("/chaos/slow", func(ctx *gin.Context) {
		c.SetSlow(true)
		log.Info("Slow mode ENABLED")
		ctx.JSON(http.StatusOK, gin.H{"message": "Slow mode enabled", "info": "Requests will have 2-5 second delays"})
	})
	r.POST("/chaos/slow/disable", func(ctx *gin.Context) {
		c.SetSlow(false)
		log.Info("Slow mode DISABLED")
		ctx.JSON(http.StatusOK, gin.H{"message": "Slow mode disabled"})
	})
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
