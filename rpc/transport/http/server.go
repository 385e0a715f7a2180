package http

import (
	"io"
	"net/http"
	"time"

	"github.com/ValentinKolb/fbstore/rpc/common"
	"github.com/ValentinKolb/fbstore/rpc/transport"
	vmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
)

var Logger = logger.GetLogger("transport/rpc")

// maxBodyBytes bounds the size of a POST body
const maxBodyBytes = 1 << 20

func NewHttpServerTransport() transport.IServerTransport {
	return &httpServerTransport{
		timers: gometrics.NewRegistry(),
	}
}

type httpServerTransport struct {
	read   transport.ReadHandleFunc
	write  transport.WriteHandleFunc
	config common.ServerConfig
	timers gometrics.Registry
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(read transport.ReadHandleFunc, write transport.WriteHandleFunc) {
	t.read = read
	t.write = write
}

func (t *httpServerTransport) Listen(config common.ServerConfig) error {
	t.config = config

	router := NewRouter(config, t.read, t.write, t.timers)

	// Periodically log the request timers
	if config.StatsInterval > 0 {
		go gometrics.Log(t.timers, config.StatsInterval, common.PrintfLogger{Logger: Logger})
	}

	Logger.Infof("Starting HTTP server on %s (path %s)", config.Endpoint, config.Path)

	server := &http.Server{
		Addr:              config.Endpoint,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

// --------------------------------------------------------------------------
// Router
// --------------------------------------------------------------------------

// NewRouter builds the HTTP handler of the service: GET and POST on config.Path,
// the Prometheus metrics on /metrics. timers may be nil.
func NewRouter(config common.ServerConfig, read transport.ReadHandleFunc, write transport.WriteHandleFunc, timers gometrics.Registry) http.Handler {
	if timers == nil {
		timers = gometrics.NewRegistry()
	}
	path := config.Path
	if path == "" {
		path = "/"
	}
	origins := config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	if config.LogLevel == "debug" {
		r.Use(loggerMiddleware)
	}

	r.With(timerMiddleware(timers, "read")).Get(path, func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, read())
	})
	r.With(timerMiddleware(timers, "write")).Post(path, func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
		defer req.Body.Close()
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		writeBody(w, write(body))
	})
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		vmetrics.WritePrometheus(w, true)
	})

	return r
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// writeBody writes a JSON response. The service reports failures inside the body,
// so the HTTP status is always 200.
func writeBody(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		Logger.Errorf("Failed to write response: %v", err)
	}
}

// --------------------------------------------------------------------------
// Middleware (logging, timing)
// --------------------------------------------------------------------------

// timerMiddleware records the duration of every request in a go-metrics timer
func timerMiddleware(registry gometrics.Registry, name string) func(http.Handler) http.Handler {
	timer := gometrics.GetOrRegisterTimer("fbstore.http."+name, registry)
	requests := vmetrics.GetOrCreateCounter(`fbstore_http_requests_total{handler="` + name + `"}`)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			timer.UpdateSince(start)
			requests.Inc()
		})
	}
}

// loggerMiddleware is a middleware that logs HTTP requests
func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		Logger.Debugf("%s %s => %d took %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
