package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sofrahq/sofra/internal/common/config"
)

type Metrics struct {
	registry     *prometheus.Registry
	namespace    string
	httpReqCnt   *prometheus.CounterVec
	httpDur      *prometheus.HistogramVec
	httpInfl     *prometheus.GaugeVec
	menuViewCnt  *prometheus.CounterVec
	loginCnt     *prometheus.CounterVec
	provisionCnt prometheus.Counter
	qrCnt        *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	r := prometheus.NewRegistry()
	// Register standard process and Go collectors
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	// Register basic HTTP metrics
	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: cfg.Buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	menuViewCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "menu_views_total"}, []string{"slug", "mode"})
	loginCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "login_attempts_total"}, []string{"status"})
	provisionCnt := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "restaurants_provisioned_total"})
	qrCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "qr_images_rendered_total"}, []string{"slug"})
	r.MustRegister(menuViewCnt, loginCnt, provisionCnt, qrCnt)

	return &Metrics{
		registry:     r,
		namespace:    ns,
		httpReqCnt:   httpReqCnt,
		httpDur:      httpDur,
		httpInfl:     httpInfl,
		menuViewCnt:  menuViewCnt,
		loginCnt:     loginCnt,
		provisionCnt: provisionCnt,
		qrCnt:        qrCnt,
	}
}

// MenuView records a public menu page load. Mode is "public" or "preview".
func (m *Metrics) MenuView(slug, mode string) {
	m.menuViewCnt.WithLabelValues(slug, mode).Inc()
}

// LoginAttempt records the outcome of a login request.
func (m *Metrics) LoginAttempt(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	m.loginCnt.WithLabelValues(status).Inc()
}

// RestaurantProvisioned records a completed provisioning transaction.
func (m *Metrics) RestaurantProvisioned() {
	m.provisionCnt.Inc()
}

// QRRendered records a rendered QR image for a restaurant slug.
func (m *Metrics) QRRendered(slug string) {
	m.qrCnt.WithLabelValues(slug).Inc()
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = routeFromURL(c.Request.URL.Path)
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := httpStatus(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// routeFromURL collapses unmatched paths so label cardinality stays bounded.
func routeFromURL(path string) string {
	if strings.HasPrefix(path, "/menus/") {
		if strings.HasSuffix(path, "/qr") {
			return "/menus/:slug/qr"
		}
		return "/menus/:slug"
	}
	return path
}

func httpStatus(code int) string { return strconv.Itoa(code) }
