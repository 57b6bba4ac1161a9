//go:build integration

package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/wb_cart/internal/cache/memory"
	"github.com/Gunvolt24/wb_cart/internal/catalog"
	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/session"
	pgstore "github.com/Gunvolt24/wb_cart/internal/storage/postgres"
	"github.com/Gunvolt24/wb_cart/internal/testutil"
	rest "github.com/Gunvolt24/wb_cart/internal/transport/http"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/internal/view/headless"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
)

// 1) Корзина переживает «перезагрузку страницы»: новый реестр читает её из Postgres
func TestHTTP_Cart_SurvivesReload_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	slots := pgstore.NewSlotStore(pg.Pool)
	sid := testutil.UniqSessionID()

	// первая «вкладка»
	ts := newServer(slots, logg)
	post(t, ts.URL+"/cart/items", sid, `{"id":"1","name":"Shirt","price":19.99,"color":"red"}`)
	snap := post(t, ts.URL+"/cart/items", sid, `{"id":"1","name":"Shirt","price":19.99,"color":"red"}`)
	require.Equal(t, 2, snap.Count)
	require.Equal(t, "$39.98", snap.Total)
	ts.Close()

	// «перезагрузка»: новый процесс, пустой кэш сессий
	ts = newServer(slots, logg)
	defer ts.Close()

	snap = get(t, ts.URL+"/cart", sid)
	require.Equal(t, 2, snap.Count)
	require.Len(t, snap.Items, 1)
	require.Equal(t, "red", snap.Items[0].Color)
	require.False(t, snap.PanelOpen, "visibility of the panel is not persisted")

	// подтверждённый checkout очищает и сохранённую корзину
	snap = post(t, ts.URL+"/cart/checkout", sid, `{"confirm":true}`)
	require.Equal(t, 0, snap.Count)
	require.Equal(t, []string{usecase.CheckoutSuccessMessage}, snap.Alerts)

	raw, found, err := slots.GetItem(ctx, "session:"+sid+":"+usecase.DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "[]", raw)
}

// 2) Битые данные в хранилище — пустая корзина без ошибки для пользователя
func TestHTTP_MalformedStoredCart_StartsEmpty_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	pg, stop, err := testutil.StartPostgresTC(ctx)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	slots := pgstore.NewSlotStore(pg.Pool)
	sid := testutil.UniqSessionID()
	require.NoError(t, slots.SetItem(ctx, "session:"+sid+":"+usecase.DefaultStorageKey, `{"not":"an array"`))

	ts := newServer(slots, logg)
	defer ts.Close()

	snap := get(t, ts.URL+"/cart", sid)
	require.Equal(t, 0, snap.Count)
	require.Equal(t, usecase.EmptyCartMessage, snap.EmptyMessage)
}

// 3) /ping, /metrics, 404 на неизвестный маршрут
func TestHTTP_Health_Metrics_And_404_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	h := rest.NewHandler(noopService{}, logg, 2*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, "", ""))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", string(readAll(t, resp.Body)))

	respM, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer respM.Body.Close()
	require.Equal(t, http.StatusOK, respM.StatusCode)
	require.NotEmpty(t, readAll(t, respM.Body))

	resp404, err := http.Get(ts.URL + "/no/such/route")
	require.NoError(t, err)
	defer resp404.Body.Close()
	require.Equal(t, http.StatusNotFound, resp404.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp404.Body).Decode(&got))
	require.Equal(t, "route not found", got["error"])
}

// 4) Таймаут запроса: реестр, который ждёт ctx.Done(), даёт 500
func TestHTTP_Timeout_500_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	h := rest.NewHandler(slowService{}, logg, 10*time.Millisecond)
	ts := httptest.NewServer(rest.NewRouter(h, "", ""))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/cart")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "internal server error", got["error"])
}

// --- функции помощники ---

func newServer(slots *pgstore.SlotStore, logg *logger.ZapLogger) *httptest.Server {
	registry := session.NewRegistry(
		cachemem.NewSessionCache(100, time.Minute),
		slots, catalog.Default(), logg, usecase.DefaultStorageKey,
	)
	h := rest.NewHandler(registry, logg, 2*time.Second)
	return httptest.NewServer(rest.NewRouter(h, "", ""))
}

func get(t *testing.T, url, sid string) headless.Snapshot {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	return send(t, req, sid)
}

func post(t *testing.T, url, sid, body string) headless.Snapshot {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return send(t, req, sid)
}

func send(t *testing.T, req *http.Request, sid string) headless.Snapshot {
	t.Helper()
	req.Header.Set(rest.SessionHeader, sid)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap headless.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

// noopService — заглушка для роутера, где неважно, что вернёт реестр.
type noopService struct{}

func (noopService) State(context.Context, string) (headless.Snapshot, error) {
	return headless.Snapshot{}, nil
}
func (noopService) Products(context.Context, string) ([]session.ProductCard, error) {
	return nil, nil
}
func (noopService) Dispatch(context.Context, *domain.CartEvent) (headless.Snapshot, error) {
	return headless.Snapshot{}, nil
}

// slowService — всегда ждёт ctx.Done() и возвращает ошибку контекста.
type slowService struct{}

func (slowService) State(ctx context.Context, _ string) (headless.Snapshot, error) {
	<-ctx.Done()
	return headless.Snapshot{}, ctx.Err()
}
func (slowService) Products(ctx context.Context, _ string) ([]session.ProductCard, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (slowService) Dispatch(ctx context.Context, _ *domain.CartEvent) (headless.Snapshot, error) {
	<-ctx.Done()
	return headless.Snapshot{}, ctx.Err()
}

// readAll — просто прочитать тело.
func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}
