// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// gzipResponseWriter sends the body through a pooled gzip.Writer.
type gzipResponseWriter struct {
	io.Writer
	http.ResponseWriter
	wroteHeader bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	// Bodiless responses are left unencoded.
	if status == http.StatusNoContent || status == http.StatusNotModified {
		w.Header().Del("Content-Encoding")
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.Writer.Write(b)
}

// gzipWriterPool reuses gzip writers across requests.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// Compression gzips responses for clients that send Accept-Encoding: gzip.
//
// Per request it:
//  1. Adds Vary: Accept-Encoding so caches keep encodings apart
//  2. Passes through untouched when the client does not accept gzip
//  3. Borrows a writer from gzipWriterPool, drops Content-Length and marks
//     the response gzip-encoded
//  4. Closes the gzip stream afterwards, unless the handler answered with a
//     bodiless status (204, 304) and the encoding was withdrawn
//
// It is mounted on the /api/v1 group, where recommendation and trending
// lists are large enough to benefit:
//
//	r.Group(func(r chi.Router) {
//		r.Use(middleware.Compression)
//		r.Get("/recommendations", h.Recommendations)
//	})
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzipWriterPool.Get().(*gzip.Writer)
		defer gzipWriterPool.Put(gz)
		gz.Reset(w)

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")

		gzw := &gzipResponseWriter{Writer: gz, ResponseWriter: w}
		next.ServeHTTP(gzw, r)

		if gzw.Header().Get("Content-Encoding") == "gzip" {
			_ = gz.Close()
		} else {
			gz.Reset(io.Discard)
		}
	})
}
