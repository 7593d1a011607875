package v1

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
	"github.com/mucyuneje/asamfxproduction/internal/service"
)

type fakeSettingsService struct {
	saved domain.PaymentSettings
}

func (f *fakeSettingsService) Get(context.Context, domain.Actor) (domain.PaymentSettings, error) {
	return f.saved, nil
}

func (f *fakeSettingsService) Save(_ context.Context, actor domain.Actor, s domain.PaymentSettings) (domain.PaymentSettings, error) {
	if err := domain.Authorize(domain.OpManageSettings, actor.Role); err != nil {
		return domain.PaymentSettings{}, err
	}
	f.saved = s
	return s, nil
}

func TestSettingsHandler(t *testing.T) {
	svc := &fakeSettingsService{}
	h := NewSettingsHandler(svc)
	build := func(actor domain.Actor) *gin.Engine {
		r := gin.New()
		g := r.Group("", withActor(actor))
		g.GET("/payment-settings", h.HandleGetSettings)
		g.PUT("/payment-settings", h.HandleSaveSettings)
		return r
	}

	w := do(build(student), http.MethodGet, "/payment-settings", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mobileMoney":{"account":"","owner":"","instructions":""},"crypto":{"account":"","owner":"","instructions":""}}`, w.Body.String())

	body := `{"mobileMoney":{"account":" 0788 ","owner":"ASAM","instructions":"Send then upload"},"crypto":{"account":"TXYZ","owner":"ASAM","instructions":"USDT TRC20"}}`
	assert.Equal(t, http.StatusForbidden, doJSON(build(student), http.MethodPut, "/payment-settings", body).Code)

	w = doJSON(build(admin), http.MethodPut, "/payment-settings", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "0788", svc.saved.MobileMoney.Account)

	w = doJSON(build(admin), http.MethodPut, "/payment-settings", `{"mobileMoney":{"account":"1","owner":"o","instructions":"i"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type fakeStatsService struct{}

func (fakeStatsService) Get(_ context.Context, actor domain.Actor) (service.Stats, error) {
	if err := domain.Authorize(domain.OpViewStats, actor.Role); err != nil {
		return service.Stats{}, err
	}
	return service.Stats{Videos: 4, Kits: 2, Users: 9, PendingPayments: 1, PendingKitPurchases: 2}, nil
}

func TestStatsHandler(t *testing.T) {
	h := NewStatsHandler(fakeStatsService{})
	build := func(actor domain.Actor) *gin.Engine {
		r := gin.New()
		r.GET("/admin/stats", withActor(actor), h.HandleGetStats)
		return r
	}

	w := do(build(admin), http.MethodGet, "/admin/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"videos":4,"kits":2,"users":9,"pending_payments":1,"pending_kit_purchases":2}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, do(build(student), http.MethodGet, "/admin/stats", nil, "").Code)
}

type fakeUserService struct {
	err error
}

func (f fakeUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	return domain.User{ID: id, Email: "ama@school.io", Password: "hash", Role: domain.RoleStudent}, nil
}

func TestUserHandler_GetMe(t *testing.T) {
	build := func(svc UserService) *gin.Engine {
		r := gin.New()
		r.GET("/users/me", withActor(student), NewUserHandler(svc).HandleGetMe)
		return r
	}

	w := do(build(fakeUserService{}), http.MethodGet, "/users/me", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	assert.NotContains(t, w.Body.String(), "hash")

	w = do(build(fakeUserService{err: service.ErrUserNotFound}), http.MethodGet, "/users/me", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(build(fakeUserService{err: errors.New("db is down")}), http.MethodGet, "/users/me", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db is down")
}

type fakeCatalogService struct{}

func (fakeCatalogService) ForUser(context.Context, domain.Actor) (domain.Catalog, error) {
	return domain.Partition(nil, nil, nil, nil), nil
}

func (fakeCatalogService) Summary(context.Context, domain.Actor) (domain.Summary, error) {
	return domain.Summary{PurchasedCount: 2, FreeVideos: []domain.Video{}, TopCategories: []string{"forex"}}, nil
}

func TestCatalogHandler(t *testing.T) {
	h := NewCatalogHandler(fakeCatalogService{})
	r := gin.New()
	g := r.Group("", withActor(student))
	g.GET("/me/catalog", h.HandleGetCatalog)
	g.GET("/me/summary", h.HandleGetSummary)

	w := do(r, http.MethodGet, "/me/catalog", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "null")

	w = do(r, http.MethodGet, "/me/summary", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"top_categories":["forex"]`)
}

func TestHandleHealthcheck(t *testing.T) {
	r := gin.New()
	r.GET("/", HandleHealthcheck)

	w := do(r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
