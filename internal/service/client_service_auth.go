// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
	"github.com/MKhiriev/go-lend-keeper/internal/utils"
	"github.com/MKhiriev/go-lend-keeper/models"
)

type clientAuthService struct {
	adapter adapter.ServerAdapter
	prefs   store.PreferencesRepository
	state   *AuthState

	logger *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, prefs store.PreferencesRepository, state *AuthState, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, prefs: prefs, state: state, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, login, password string) (models.Identity, error) {
	user, err := credentials(login, password)
	if err != nil {
		return models.Identity{}, err
	}

	token, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return a.signIn(ctx, user.Login, token)
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) (models.Identity, error) {
	user, err := credentials(login, password)
	if err != nil {
		return models.Identity{}, err
	}

	token, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return a.signIn(ctx, user.Login, token)
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.adapter.SetToken("")
	a.state.Set(models.Identity{})

	for _, key := range []string{store.PrefSessionToken, store.PrefSessionLogin, store.PrefSessionUser} {
		if err := a.prefs.DeletePreference(ctx, key); err != nil {
			return fmt.Errorf("forget session: %w", err)
		}
	}
	return nil
}

func (a *clientAuthService) Restore(ctx context.Context) (models.Identity, error) {
	token, ok, err := a.prefs.GetPreference(ctx, store.PrefSessionToken)
	if err != nil {
		return models.Identity{}, fmt.Errorf("read saved session: %w", err)
	}
	if !ok || token == "" {
		return models.Identity{}, nil
	}

	login, _, err := a.prefs.GetPreference(ctx, store.PrefSessionLogin)
	if err != nil {
		return models.Identity{}, fmt.Errorf("read saved session: %w", err)
	}

	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "clientAuthService.Restore").Msg("saved token is unreadable, ignoring it")
		return models.Identity{}, nil
	}

	id := models.Identity{UserID: userID, Login: login, Token: token}
	a.adapter.SetToken(token)
	a.state.Set(id)
	return id, nil
}

// signIn turns a fresh token into the published identity and saves it.
// A failure to save only costs the next automatic sign-in.
func (a *clientAuthService) signIn(ctx context.Context, login, token string) (models.Identity, error) {
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("read token subject: %w", err)
	}

	id := models.Identity{UserID: userID, Login: login, Token: token}
	a.adapter.SetToken(token)

	for key, value := range map[string]string{
		store.PrefSessionToken: token,
		store.PrefSessionLogin: login,
		store.PrefSessionUser:  userID,
	} {
		if err := a.prefs.SetPreference(ctx, key, value); err != nil {
			a.logger.Err(err).Str("func", "clientAuthService.signIn").Str("key", key).Msg("could not save session")
		}
	}

	a.state.Set(id)
	return id, nil
}

func credentials(login, password string) (models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	return models.User{Login: login, Password: password}, nil
}
