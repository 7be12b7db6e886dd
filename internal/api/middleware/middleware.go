package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/thanhnp/psbt-apis/internal/address"
	"github.com/thanhnp/psbt-apis/internal/inspect"
	"github.com/thanhnp/psbt-apis/internal/models"
)

// NetworkKey is the context key under which ValidateNetwork stores the parsed network
const NetworkKey = "network"

var apiLog = log.WithField("component", "api")

// Logger logs request information
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Filter out HTTP/2 connection preface attempts
		if c.Request.Method == "PRI" {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		c.Next()

		entry := apiLog.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}

// Recovery recovers from panics and returns a 500 error
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				apiLog.WithField("panic", err).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
					Error: "internal server error",
					Kind:  "internal",
				})
			}
		}()
		c.Next()
	}
}

// CORS adds CORS headers
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ValidateNetwork parses the :network path parameter and stores the result
// under NetworkKey
func ValidateNetwork() gin.HandlerFunc {
	return func(c *gin.Context) {
		net, err := address.ParseNetwork(c.Param("network"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Error: err.Error(),
				Stage: string(inspect.StageNetwork),
				Kind:  "unknown_network",
			})
			return
		}
		c.Set(NetworkKey, net)
		c.Next()
	}
}

// Network returns the network stored by ValidateNetwork
func Network(c *gin.Context) address.Network {
	return c.MustGet(NetworkKey).(address.Network)
}
