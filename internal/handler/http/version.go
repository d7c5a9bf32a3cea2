// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-lend-keeper/internal/utils"
	"github.com/MKhiriev/go-lend-keeper/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())
	utils.WriteJSON(w, models.VersionResponse{Version: version}, http.StatusOK)
}
