// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-lend-keeper/internal/app"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := decodeJSON(w, r, &user); err != nil {
		writeError(w, r, "Handler.register", err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		writeError(w, r, "Handler.register", err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Str("func", "Handler.register").Msg("creation of token failed")
		http.Error(w, app.MsgRegistrationFailed, http.StatusInternalServerError)
		return
	}

	log.Info().Str("func", "Handler.register").Str("user_id", registeredUser.UserID).Msg("user registered")

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := decodeJSON(w, r, &user); err != nil {
		writeError(w, r, "Handler.login", err)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		writeError(w, r, "Handler.login", err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Str("func", "Handler.login").Msg("creation of token failed")
		http.Error(w, app.MsgLoginFailed, http.StatusInternalServerError)
		return
	}

	log.Debug().Str("func", "Handler.login").Str("user_id", foundUser.UserID).Msg("user logged in")

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	w.WriteHeader(http.StatusOK)
}
