package web

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
	"go.uber.org/zap"
)

// Widget is an interface of the ping indicator served by the handler.
type Widget interface {
	Trigger() bool
	Render() widget.View
	Subscribe(func(widget.Status)) (cancel func())
}

const eventView = "view"

type handler struct {
	log    *zap.Logger
	widget Widget
}

// NewHandler returns http.Handler of the ping page:
//
//	GET  /         page with the indicator
//	POST /ping     starts ping, 202 or 409 if another one is in flight
//	GET  /view     current view
//	GET  /events   server-sent "view" events, one per status change
//	GET  /healthz  liveness probe
func NewHandler(w Widget, l *zap.Logger) http.Handler {
	h := &handler{
		log:    l,
		widget: w,
	}

	r := gin.New()
	r.Use(gin.Recovery(), h.accessLog)
	r.SetHTMLTemplate(pageTemplate)

	r.GET("/", h.page)
	r.POST("/ping", h.ping)
	r.GET("/view", h.view)
	r.GET("/events", h.events)
	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func (h *handler) accessLog(c *gin.Context) {
	start := time.Now()

	c.Next()

	h.log.Debug("http request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}

func (h *handler) page(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplateName, h.widget.Render())
}

func (h *handler) ping(c *gin.Context) {
	if !h.widget.Trigger() {
		c.JSON(http.StatusConflict, h.widget.Render())
		return
	}

	c.JSON(http.StatusAccepted, h.widget.Render())
}

func (h *handler) view(c *gin.Context) {
	c.JSON(http.StatusOK, h.widget.Render())
}

func (h *handler) events(c *gin.Context) {
	// only the latest view matters for slow clients
	updates := make(chan widget.View, 1)

	cancel := h.widget.Subscribe(func(s widget.Status) {
		v := widget.Render(s)

		for {
			select {
			case updates <- v:
				return
			default:
			}

			select {
			case <-updates:
			default:
			}
		}
	})
	defer cancel()

	c.SSEvent(eventView, h.widget.Render())
	c.Writer.Flush()

	ctx := c.Request.Context()

	c.Stream(func(io.Writer) bool {
		select {
		case v := <-updates:
			c.SSEvent(eventView, v)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
