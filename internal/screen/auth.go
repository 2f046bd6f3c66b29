package screen

import (
	"context"
	"errors"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/backend"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/model"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/session"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

// Auth gates the privileged screens behind the stored session
type Auth struct {
	api    *backend.Client
	sess   *session.Store
	notify Notifier
}

// NewAuth creates the login/logout controller
func NewAuth(api *backend.Client, sess *session.Store, notify Notifier) *Auth {
	return &Auth{api: api, sess: sess, notify: notify}
}

// Login validates the credentials, authenticates against the backend and
// persists the session
func (a *Auth) Login(ctx context.Context, cred model.Kredensial) error {
	if err := cred.Validate(); err != nil {
		a.notify.Notify(err.Error(), ui.KindError)
		return err
	}

	user, token, err := a.api.Login(ctx, cred)
	if err != nil {
		a.notify.Notify("Gagal login: "+err.Error(), ui.KindError)
		return err
	}

	if err := a.sess.SetUser(user, token); err != nil {
		a.notify.Notify("Gagal menyimpan sesi: "+err.Error(), ui.KindError)
		return err
	}

	a.notify.Notify("Login berhasil!", ui.KindSuccess)
	return nil
}

// Logout clears the stored session. The backend call is best effort; local
// credentials are destroyed either way.
func (a *Auth) Logout(ctx context.Context) {
	if a.sess.IsAuthenticated() {
		if err := a.api.Logout(ctx); err != nil {
			var ce *backend.CallError
			if errors.As(err, &ce) {
				// The token may already be dead on the backend; that is fine
			}
		}
	}
	a.sess.Clear()
	a.notify.Notify("Logout berhasil", ui.KindSuccess)
}

// CheckSession verifies the stored token against the backend. Credentials
// are invalidated only on an explicit negative answer; connectivity trouble
// keeps the session.
func (a *Auth) CheckSession(ctx context.Context) bool {
	if !a.sess.IsAuthenticated() {
		return false
	}

	ok, err := a.api.CheckAuth(ctx)
	if err != nil {
		return true
	}
	if !ok {
		a.sess.Clear()
		a.notify.Notify("Sesi berakhir, silakan login kembali", ui.KindWarning)
		return false
	}
	return true
}
