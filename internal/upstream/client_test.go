package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardiya/storefront/internal/config"
	"github.com/wardiya/storefront/internal/debuglog"
)

func testConfig(base string) *config.Config {
	return &config.Config{
		UpstreamAPIURL:    base,
		UpstreamTimeout:   5 * time.Second,
		CatalogRevalidate: time.Minute,
		HeroRevalidate:    time.Minute,
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(testConfig(srv.URL), debuglog.New(false))
	require.NoError(t, err)
	return client, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(testConfig(""), debuglog.New(false))
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(testConfig("   "), debuglog.New(false))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"u1","name":"Test","email":"t@example.com"}}`))
	}))

	user, err := client.Me(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "u1", user.ID)
}

func TestErrorBodyMessageSurfaced(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"email already registered"}`))
	}))

	err := client.Signup(context.Background(), "n", "e@example.com", "pw", "cap")
	require.Error(t, err)
	assert.True(t, IsRejection(err))
	assert.Equal(t, "email already registered", RejectionMessage(err))
}

func TestUnparseableErrorBodyFallsBack(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, "request failed", RejectionMessage(err))
}

func TestTransportFailureIsNotRejection(t *testing.T) {
	client, err := New(testConfig("http://127.0.0.1:1"), debuglog.New(false))
	require.NoError(t, err)

	pingErr := client.Ping(context.Background())
	require.Error(t, pingErr)
	assert.ErrorIs(t, pingErr, ErrUnreachable)
	assert.False(t, IsRejection(pingErr))
}

func TestCatalogReadsServedFromCache(t *testing.T) {
	var calls atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"c1","nameAr":"ورود","nameEn":"Roses"}]`))
	}))

	ctx := context.Background()
	first, err := client.GetCategories(ctx)
	require.NoError(t, err)
	second, err := client.GetCategories(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load(), "second read inside the window must hit the cache")

	client.InvalidateCache()
	_, err = client.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetchHeroSlidesToleratesOneFailure(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/promotions":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"banner service down"}`))
		case "/occasions":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"o1","nameAr":"عيد الأم","nameEn":"Mother's Day",` +
				`"messageAr":"كل عام وأمك بخير","messageEn":"Happy Mother's Day",` +
				`"images":["m1.jpg","m2.jpg"],` +
				`"startsAt":"2026-02-20T00:00:00Z","endsAt":"2026-03-22T00:00:00Z"}]`))
		default:
			http.NotFound(w, r)
		}
	}))

	slides, err := client.FetchHeroSlides(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, slides, 2, "one slide per occasion image")
	assert.Equal(t, "o1", slides[0].OccasionID)
}

func TestFetchHeroSlidesBothFailing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchHeroSlides(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestInactiveOccasionProducesNoSlides(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/promotions":
			_, _ = w.Write([]byte(`[]`))
		case "/occasions":
			_, _ = w.Write([]byte(`[{"id":"o1","images":["x.jpg"],` +
				`"startsAt":"2026-02-20T00:00:00Z","endsAt":"2026-03-22T00:00:00Z"}]`))
		default:
			http.NotFound(w, r)
		}
	}))

	slides, err := client.FetchHeroSlides(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, slides)
}

func TestFetchedPayloadsRecordedInSink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	sink := debuglog.New(true)
	client, err := New(testConfig(srv.URL), sink)
	require.NoError(t, err)

	_, err = client.GetCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sink.Len())
	assert.Equal(t, "/categories", sink.Entries()[0].Source)
	assert.Equal(t, debuglog.KindServer, sink.Entries()[0].Kind)
}

func TestIdentityFetchRecordedWithAuthKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","name":"Test","email":"t@example.com"}`))
	}))
	t.Cleanup(srv.Close)

	sink := debuglog.New(true)
	client, err := New(testConfig(srv.URL), sink)
	require.NoError(t, err)

	_, err = client.Me(context.Background(), "tok-9")
	require.NoError(t, err)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, debuglog.KindAuth, entries[0].Kind)
	assert.Equal(t, "auth/me", entries[0].Source)
}
