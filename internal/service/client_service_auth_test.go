package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/app"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/mock"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
	"github.com/MKhiriev/go-lend-keeper/internal/utils"
	"github.com/MKhiriev/go-lend-keeper/models"
)

func newTestClientAuthSvc(t *testing.T) (ClientAuthService, *mock.MockServerAdapter, *mock.MockPreferencesRepository, *AuthState) {
	t.Helper()
	ctrl := gomock.NewController(t)
	a := mock.NewMockServerAdapter(ctrl)
	prefs := mock.NewMockPreferencesRepository(ctrl)
	state := NewAuthState()
	return NewClientAuthService(a, prefs, state, logger.Nop()), a, prefs, state
}

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("lendkeeper-test", userID, time.Hour, "key")
	require.NoError(t, err)
	return token.SignedString
}

// ── Register / Login ─────────────────────────────────────────────────────────

func TestClientAuthService_Login_Success(t *testing.T) {
	svc, a, prefs, state := newTestClientAuthSvc(t)
	ctx := context.Background()
	token := signedToken(t, "user-1")

	a.EXPECT().Login(ctx, models.User{Login: "alice", Password: "secret"}).Return(token, nil)
	a.EXPECT().SetToken(token)
	prefs.EXPECT().SetPreference(ctx, store.PrefSessionToken, token).Return(nil)
	prefs.EXPECT().SetPreference(ctx, store.PrefSessionLogin, "alice").Return(nil)
	prefs.EXPECT().SetPreference(ctx, store.PrefSessionUser, "user-1").Return(nil)

	id, err := svc.Login(ctx, " alice ", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: "user-1", Login: "alice", Token: token}, id)
	assert.Equal(t, id, state.Current())
}

func TestClientAuthService_Register_Success(t *testing.T) {
	svc, a, prefs, state := newTestClientAuthSvc(t)
	token := signedToken(t, "user-2")

	a.EXPECT().Register(gomock.Any(), models.User{Login: "bob", Password: "pw"}).Return(token, nil)
	a.EXPECT().SetToken(token)
	prefs.EXPECT().SetPreference(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)

	id, err := svc.Register(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "user-2", id.UserID)
	assert.Equal(t, id, state.Current())
}

func TestClientAuthService_Login_BlankInput(t *testing.T) {
	svc, _, _, _ := newTestClientAuthSvc(t)

	_, err := svc.Login(context.Background(), "  ", "secret")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	_, err = svc.Register(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestClientAuthService_Login_WrongPassword(t *testing.T) {
	svc, a, _, state := newTestClientAuthSvc(t)

	a.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword))

	_, err := svc.Login(context.Background(), "alice", "nope")
	assert.ErrorIs(t, err, ErrLoginOnServer)
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.True(t, state.Current().IsZero())
}

func TestClientAuthService_Register_LoginTaken(t *testing.T) {
	svc, a, _, _ := newTestClientAuthSvc(t)

	a.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgLoginAlreadyExists))

	_, err := svc.Register(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, ErrRegisterOnServer)
	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestClientAuthService_Login_PreferenceFailureStillSignsIn(t *testing.T) {
	svc, a, prefs, state := newTestClientAuthSvc(t)
	token := signedToken(t, "user-1")

	a.EXPECT().Login(gomock.Any(), gomock.Any()).Return(token, nil)
	a.EXPECT().SetToken(token)
	prefs.EXPECT().SetPreference(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(3)

	_, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", state.Current().UserID)
}

func TestClientAuthService_Login_UnreadableToken(t *testing.T) {
	svc, a, _, state := newTestClientAuthSvc(t)

	a.EXPECT().Login(gomock.Any(), gomock.Any()).Return("garbage", nil)

	_, err := svc.Login(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.True(t, state.Current().IsZero())
}

// ── Logout / Restore ─────────────────────────────────────────────────────────

func TestClientAuthService_Logout(t *testing.T) {
	svc, a, prefs, state := newTestClientAuthSvc(t)
	state.Set(models.Identity{UserID: "user-1", Token: "t"})

	a.EXPECT().SetToken("")
	prefs.EXPECT().DeletePreference(gomock.Any(), store.PrefSessionToken).Return(nil)
	prefs.EXPECT().DeletePreference(gomock.Any(), store.PrefSessionLogin).Return(nil)
	prefs.EXPECT().DeletePreference(gomock.Any(), store.PrefSessionUser).Return(nil)

	require.NoError(t, svc.Logout(context.Background()))
	assert.True(t, state.Current().IsZero())
}

func TestClientAuthService_Restore_NoSession(t *testing.T) {
	svc, _, prefs, state := newTestClientAuthSvc(t)

	prefs.EXPECT().GetPreference(gomock.Any(), store.PrefSessionToken).Return("", false, nil)

	id, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, id.IsZero())
	assert.True(t, state.Current().IsZero())
}

func TestClientAuthService_Restore_SavedSession(t *testing.T) {
	svc, a, prefs, state := newTestClientAuthSvc(t)
	token := signedToken(t, "user-1")

	prefs.EXPECT().GetPreference(gomock.Any(), store.PrefSessionToken).Return(token, true, nil)
	prefs.EXPECT().GetPreference(gomock.Any(), store.PrefSessionLogin).Return("alice", true, nil)
	a.EXPECT().SetToken(token)

	id, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: "user-1", Login: "alice", Token: token}, id)
	assert.Equal(t, id, state.Current())
}

func TestClientAuthService_Restore_StoreError(t *testing.T) {
	svc, _, prefs, _ := newTestClientAuthSvc(t)

	prefs.EXPECT().GetPreference(gomock.Any(), store.PrefSessionToken).Return("", false, errors.New("locked"))

	_, err := svc.Restore(context.Background())
	require.Error(t, err)
}
