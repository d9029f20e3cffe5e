package http

import "net/http"

// responseWriter is a thin decorator around [http.ResponseWriter] used by
// withLogging to observe the status code and the number of bytes written
// after the downstream handler has returned. WriteHeader is forwarded to the
// underlying writer exactly once; later calls are ignored, matching the
// contract of the standard library's response writer.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write implicitly reports 200 when WriteHeader was never called, like the
// standard library does.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Flush forwards to the wrapped writer when it supports streaming, so that
// handlers behind the logging middleware can still push chunks eagerly.
func (w *responseWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
