// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	pathRegister = "/api/auth/register"
	pathLogin    = "/api/auth/login"
	pathVersion  = "/api/version"
	pathRecords  = "/api/records"
	pathRecord   = "/api/records/{id}"
	pathBatch    = "/api/records/batch"
	pathStream   = "/api/records/stream"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// request/response routes
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}

		r.Post(pathRegister, h.register)
		r.Post(pathLogin, h.login)
		r.Get(pathVersion, h.getServerVersion)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get(pathRecords, h.listRecords)
			r.Post(pathRecords, h.createRecord)
			r.Patch(pathRecord, h.updateRecord)
			r.Delete(pathRecord, h.deleteRecord)
			r.Post(pathBatch, h.commitBatch)
		})
	})

	// the change stream is long-lived: no timeout, no compression
	router.With(h.auth).Get(pathStream, h.streamRecords)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
