package handler

import (
	"HeartSnaps/models"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeCustomerService struct {
	byPhone map[string]*models.Customer
	byEmail map[string]*models.Customer
}

func (f *fakeCustomerService) ResolveOrCreate(_ context.Context, _, _, _, _ string) (*models.Customer, error) {
	return nil, nil
}

func (f *fakeCustomerService) FindByPhone(_ context.Context, phone string) (*models.Customer, error) {
	return f.byPhone[phone], nil
}

func (f *fakeCustomerService) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	return f.byEmail[email], nil
}

func newCustomerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	known := &models.Customer{ID: 7, Phone: "13800001111", Name: "张三", Email: "zhang@example.com", Address: "成都市武侯区"}
	h := &Customer{CustomerService: &fakeCustomerService{
		byPhone: map[string]*models.Customer{known.Phone: known},
		byEmail: map[string]*models.Customer{known.Email: known},
	}}

	r := gin.New()
	h.RegisterRouter(r)
	return r
}

func TestCustomerLookup(t *testing.T) {
	r := newCustomerRouter()

	cases := []struct {
		name  string
		query string
		found bool
	}{
		{"by phone", "phone=13800001111", true},
		{"by email", "email=zhang@example.com", true},
		{"phone miss", "phone=13900000000", false},
		{"email miss", "email=nobody@example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/customers/lookup?"+tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			want := `"found":false`
			if tc.found {
				want = `"found":true`
			}
			if !strings.Contains(w.Body.String(), want) {
				t.Errorf("body = %s, want %s", w.Body.String(), want)
			}
		})
	}
}

func TestCustomerLookupRequiresParam(t *testing.T) {
	r := newCustomerRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/customers/lookup", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 业务错误统一 200 信封，错误码在 code 字段
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"code":400`) {
		t.Errorf("status = %d, body = %s, want envelope code 400", w.Code, w.Body.String())
	}
}
