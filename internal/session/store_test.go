package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardiya/storefront/internal/models"
	"github.com/wardiya/storefront/internal/upstream"
)

type fakeAuthAPI struct {
	calls atomic.Int64

	signupErr  error
	verifyResp *upstream.AuthResponse
	verifyErr  error
	loginResp  *upstream.AuthResponse
	loginErr   error
	phoneReqEr error
	phoneResp  *upstream.AuthResponse
	phoneErr   error
	meFn       func(token string) (*models.User, error)
}

func authOK(token, name string) *upstream.AuthResponse {
	return &upstream.AuthResponse{
		AccessToken: token,
		User:        models.User{ID: "u1", Name: name, Email: "u@example.com", EmailVerified: true},
	}
}

func (f *fakeAuthAPI) Signup(ctx context.Context, name, email, password, captchaToken string) error {
	f.calls.Add(1)
	return f.signupErr
}

func (f *fakeAuthAPI) VerifyEmail(ctx context.Context, email, code string) (*upstream.AuthResponse, error) {
	f.calls.Add(1)
	return f.verifyResp, f.verifyErr
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*upstream.AuthResponse, error) {
	f.calls.Add(1)
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) RequestPhoneLogin(ctx context.Context, phone string) error {
	f.calls.Add(1)
	return f.phoneReqEr
}

func (f *fakeAuthAPI) VerifyPhoneLogin(ctx context.Context, phone, code string) (*upstream.AuthResponse, error) {
	f.calls.Add(1)
	return f.phoneResp, f.phoneErr
}

func (f *fakeAuthAPI) RequestPasswordReset(ctx context.Context, email string) error {
	f.calls.Add(1)
	return nil
}

func (f *fakeAuthAPI) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	f.calls.Add(1)
	return nil
}

func (f *fakeAuthAPI) Me(ctx context.Context, token string) (*models.User, error) {
	f.calls.Add(1)
	if f.meFn != nil {
		return f.meFn(token)
	}
	return &models.User{ID: "u1"}, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context, token string) error {
	f.calls.Add(1)
	return nil
}

func TestBootstrapWithoutToken(t *testing.T) {
	api := &fakeAuthAPI{}
	s := New(api)

	assert.True(t, s.Snapshot().IsLoading, "bootstrap starts in the checking state")

	s.CheckAuthStatus(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.Equal(t, int64(0), api.calls.Load(), "no token means no identity fetch")
}

func TestBootstrapFailClosedOnNetworkError(t *testing.T) {
	api := &fakeAuthAPI{
		meFn: func(string) (*models.User, error) { return nil, upstream.ErrUnreachable },
	}
	s := New(api)
	s.SetToken("opaque-token")

	s.CheckAuthStatus(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.IsAuthenticated, "failed verification must never assume access")
	assert.Nil(t, snap.User)

	_, ok := s.Token()
	assert.False(t, ok)
}

func TestBootstrapLoadsUser(t *testing.T) {
	api := &fakeAuthAPI{
		meFn: func(token string) (*models.User, error) {
			return &models.User{ID: "u9", Name: "Hala"}, nil
		},
	}
	s := New(api)
	s.SetToken("opaque-token")

	s.CheckAuthStatus(context.Background())

	snap := s.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Hala", snap.User.Name)
}

func TestSignupDoesNotAuthenticate(t *testing.T) {
	api := &fakeAuthAPI{}
	s := New(api)

	require.NoError(t, s.Signup(context.Background(), "Hala", "h@example.com", "pw123456", "cap"))

	assert.False(t, s.IsAuthenticated())
	email, pending := s.AwaitingVerification()
	assert.True(t, pending)
	assert.Equal(t, "h@example.com", email)
}

func TestSignupSurfacesUpstreamMessage(t *testing.T) {
	api := &fakeAuthAPI{
		signupErr: &upstream.APIError{Status: 409, Message: "email already registered"},
	}
	s := New(api)

	err := s.Signup(context.Background(), "Hala", "h@example.com", "pw123456", "cap")
	assert.Equal(t, "email already registered", upstream.RejectionMessage(err))
	_, pending := s.AwaitingVerification()
	assert.False(t, pending)
}

func TestVerifyEmailAuthenticates(t *testing.T) {
	api := &fakeAuthAPI{verifyResp: authOK("tok-1", "Hala")}
	s := New(api)
	require.NoError(t, s.Signup(context.Background(), "Hala", "h@example.com", "pw123456", "cap"))

	require.NoError(t, s.VerifyEmail(context.Background(), "h@example.com", "123456"))

	assert.True(t, s.IsAuthenticated())
	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-1", token)
	_, pending := s.AwaitingVerification()
	assert.False(t, pending)
}

func TestLogin(t *testing.T) {
	api := &fakeAuthAPI{loginResp: authOK("tok-2", "Hala")}
	s := New(api)

	require.NoError(t, s.Login(context.Background(), "h@example.com", "pw123456"))
	assert.True(t, s.IsAuthenticated())
}

func TestPhoneVerifyWithoutRequestRejectedLocally(t *testing.T) {
	api := &fakeAuthAPI{phoneResp: authOK("tok-3", "Hala")}
	s := New(api)

	err := s.VerifyPhoneLogin(context.Background(), "+966500000000", "1234")

	assert.ErrorIs(t, err, ErrNoPendingPhoneLogin)
	assert.Equal(t, int64(0), api.calls.Load(), "rejection happens before any network call")
	assert.False(t, s.IsAuthenticated())
}

func TestPhoneTwoStepFlow(t *testing.T) {
	api := &fakeAuthAPI{phoneResp: authOK("tok-3", "Hala")}
	s := New(api)

	require.NoError(t, s.RequestPhoneLogin(context.Background(), "+966500000000"))

	// A different number is still rejected.
	err := s.VerifyPhoneLogin(context.Background(), "+966511111111", "1234")
	assert.ErrorIs(t, err, ErrNoPendingPhoneLogin)

	require.NoError(t, s.VerifyPhoneLogin(context.Background(), "+966500000000", "1234"))
	assert.True(t, s.IsAuthenticated())

	// The pending step is consumed.
	err = s.VerifyPhoneLogin(context.Background(), "+966500000000", "1234")
	assert.ErrorIs(t, err, ErrNoPendingPhoneLogin)
}

func TestPasswordResetNeverMutatesSession(t *testing.T) {
	api := &fakeAuthAPI{loginResp: authOK("tok-4", "Hala")}
	s := New(api)
	require.NoError(t, s.Login(context.Background(), "h@example.com", "pw123456"))

	require.NoError(t, s.RequestPasswordReset(context.Background(), "h@example.com"))
	require.NoError(t, s.ResetPassword(context.Background(), "h@example.com", "999", "newpw12345"))

	assert.True(t, s.IsAuthenticated())
	token, _ := s.Token()
	assert.Equal(t, "tok-4", token)
}

func TestLogoutClearsSynchronouslyAndRunsHooks(t *testing.T) {
	api := &fakeAuthAPI{loginResp: authOK("tok-5", "Hala")}
	s := New(api)
	require.NoError(t, s.Login(context.Background(), "h@example.com", "pw123456"))

	var hookRuns atomic.Int64
	s.OnLogout(func() { hookRuns.Add(1) })

	s.Logout(context.Background())

	assert.False(t, s.IsAuthenticated())
	_, ok := s.Token()
	assert.False(t, ok, "authenticated calls must fail locally after logout")
	assert.Nil(t, s.Snapshot().User)
	assert.Equal(t, int64(1), hookRuns.Load())
}

func TestStaleAuthCheckCannotResurrectSession(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAuthAPI{}
	api.loginResp = authOK("tok-6", "Hala")
	api.meFn = func(token string) (*models.User, error) {
		<-release
		return &models.User{ID: "u1", Name: "Hala"}, nil
	}

	s := New(api)
	require.NoError(t, s.Login(context.Background(), "h@example.com", "pw123456"))

	done := make(chan struct{})
	go func() {
		s.CheckAuthStatus(context.Background())
		close(done)
	}()

	// Logout while the identity fetch is in flight; the late success must
	// be discarded.
	s.Logout(context.Background())
	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("auth check did not settle")
	}

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Snapshot().User)
}

func TestExpiredJWTFailsClosedWithoutNetwork(t *testing.T) {
	api := &fakeAuthAPI{
		meFn: func(string) (*models.User, error) {
			return nil, errors.New("should not be called")
		},
	}
	s := New(api)
	// HS256 JWT with exp in the past (2001-09-09); signature is irrelevant,
	// only the exp claim is inspected.
	s.SetToken("eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJ1MSIsImV4cCI6MTAwMDAwMDAwMH0." +
		"aW52YWxpZC1zaWduYXR1cmU")

	s.CheckAuthStatus(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, int64(0), api.calls.Load())
}
