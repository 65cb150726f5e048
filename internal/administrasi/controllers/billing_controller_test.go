package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/c14220110/poliklinik-lab/internal/administrasi/controllers"
	"github.com/c14220110/poliklinik-lab/internal/administrasi/models"
	"github.com/c14220110/poliklinik-lab/internal/administrasi/routes"
	"github.com/c14220110/poliklinik-lab/internal/administrasi/services"
	"github.com/c14220110/poliklinik-lab/internal/common/memstore"
	cm "github.com/c14220110/poliklinik-lab/internal/common/models"
	"github.com/c14220110/poliklinik-lab/internal/common/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type server struct {
	t     *testing.T
	e     *echo.Echo
	store *memstore.Store
}

func newServer(t *testing.T) *server {
	t.Helper()
	store := memstore.New()
	store.Seed([]cm.DiagnosticTest{{Name: "CBC", Price: 100}, {Name: "X-Ray", Price: 300}}, nil, nil)
	require.NoError(t, store.UpdateSettings(context.Background(), cm.GlobalSettings{LabName: "Lab Sehat"}))
	require.NoError(t, store.Submit(context.Background(), cm.Prescription{
		PrescriptionID: "RX001", PatientName: "Siti", LabTests: []string{"CBC"},
	}))

	svc := services.NewBillingService(services.BillingDeps{
		Catalog:       store,
		Prescriptions: store,
		Invoices:      store,
		Settings:      store,
		Now:           func() time.Time { return time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC) },
		Sessions:      session.NewMemoryStore[models.LabOrderState](time.Hour),
	})

	e := echo.New()
	routes.RegisterLabOrderRoutes(e.Group("/api"), controllers.NewBillingController(svc))
	return &server{t: t, e: e, store: store}
}

func (s *server) do(method, path, body string) (int, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func (s *server) start() string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/lab-orders/sessions", "")
	require.Equal(s.t, http.StatusCreated, code)
	var view models.LabOrderView
	require.NoError(s.t, json.Unmarshal(env.Data, &view))
	return view.SessionID
}

func TestLabOrderAPI_SearchAndSave(t *testing.T) {
	s := newServer(t)
	id := s.start()
	base := "/api/lab-orders/sessions/" + id

	code, env := s.do(http.MethodPost, base+"/search", `{"prescription_id":"rx001"}`)
	require.Equal(t, http.StatusOK, code)
	var view models.LabOrderView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.ViewInvoice, view.State.View)
	require.NotNil(t, view.Invoice)
	assert.Equal(t, 100.0, view.Invoice.Subtotal)

	code, _ = s.do(http.MethodPut, base+"/discount", `{"discount":20}`)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, base+"/save", "")
	require.Equal(t, http.StatusCreated, code)
	var result models.SaveResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 80.0, result.Invoice.Total)
	assert.Equal(t, "Lab Sehat", result.Invoice.LabName)
	assert.Equal(t, models.ViewList, result.View.State.View)

	code, env = s.do(http.MethodGet, "/api/lab-orders/invoices", "")
	require.Equal(t, http.StatusOK, code)
	var invoices []cm.LabInvoice
	require.NoError(t, json.Unmarshal(env.Data, &invoices))
	require.Len(t, invoices, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/lab-orders/invoices/"+invoices[0].ID+"/pdf", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestLabOrderAPI_ValidationErrors(t *testing.T) {
	s := newServer(t)
	id := s.start()
	base := "/api/lab-orders/sessions/" + id

	code, env := s.do(http.MethodPost, base+"/search", `{"prescription_id":"  "}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, services.MsgPrescriptionIDRequired, env.Message)

	code, env = s.do(http.MethodPut, base+"/discount", `{"discount":150}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, services.MsgInvalidDiscount, env.Message)

	code, env = s.do(http.MethodPost, base+"/save", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, services.MsgNoPrescriptionSelected, env.Message)

	code, _ = s.do(http.MethodPut, base+"/discount", `{"discount":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLabOrderAPI_ManualOrder(t *testing.T) {
	s := newServer(t)
	id := s.start()
	base := "/api/lab-orders/sessions/" + id

	code, _ := s.do(http.MethodPut, base+"/view", `{"view":"create"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, base+"/tests", `{"test_name":"X-Ray"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, base+"/tests", `{"test_name":"CBC"}`)
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(http.MethodGet, base+"/tests", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))

	code, env = s.do(http.MethodDelete, base+"/tests/"+url.PathEscape("X-Ray"), "")
	require.Equal(t, http.StatusOK, code)
	var view models.LabOrderView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, []string{"CBC"}, view.State.SelectedTests)

	code, env = s.do(http.MethodPost, base+"/manual-order", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, services.MsgPatientNameRequired, env.Message)

	code, _ = s.do(http.MethodPut, base+"/patient-name", `{"patient_name":"Ani"}`)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodPost, base+"/manual-order", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, models.ViewInvoice, view.State.View)
	assert.Equal(t, "Ani", view.Invoice.PatientName)
}

func TestLabOrderAPI_RemoveTestEncodedName(t *testing.T) {
	s := newServer(t)
	s.store.Seed([]cm.DiagnosticTest{
		{Name: "Complete Blood Count (CBC)", Price: 100},
		{Name: "Urine 24/7", Price: 50},
	}, nil, nil)
	id := s.start()
	base := "/api/lab-orders/sessions/" + id

	selected := func(env envelope) []string {
		var view models.LabOrderView
		require.NoError(t, json.Unmarshal(env.Data, &view))
		return view.State.SelectedTests
	}

	paths := map[string]string{
		"parentheses kept":    "/tests/Complete%20Blood%20Count%20(CBC)",
		"parentheses escaped": "/tests/Complete%20Blood%20Count%20%28CBC%29",
		"query":               "/tests?name=" + url.QueryEscape("Complete Blood Count (CBC)"),
	}
	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			code, _ := s.do(http.MethodPost, base+"/tests", `{"test_name":"Complete Blood Count (CBC)"}`)
			require.Equal(t, http.StatusOK, code)

			code, env := s.do(http.MethodDelete, base+path, "")
			require.Equal(t, http.StatusOK, code)
			assert.Empty(t, selected(env))
		})
	}

	t.Run("slash in name", func(t *testing.T) {
		code, _ := s.do(http.MethodPost, base+"/tests", `{"test_name":"Urine 24/7"}`)
		require.Equal(t, http.StatusOK, code)

		code, env := s.do(http.MethodDelete, base+"/tests?name="+url.QueryEscape("Urine 24/7"), "")
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, selected(env))
	})

	t.Run("invalid escape", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, base+"/tests/CBC", nil)
		req.URL.RawPath = base + "/tests/CBC%zz"
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid test name")
	})

	t.Run("missing name", func(t *testing.T) {
		code, _ := s.do(http.MethodDelete, base+"/tests", "")
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestLabOrderAPI_UnknownSession(t *testing.T) {
	s := newServer(t)

	code, _ := s.do(http.MethodGet, "/api/lab-orders/sessions/missing", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/lab-orders/invoices/INV1/pdf", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLabOrderAPI_CloseSession(t *testing.T) {
	s := newServer(t)
	id := s.start()

	code, _ := s.do(http.MethodDelete, "/api/lab-orders/sessions/"+id, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/lab-orders/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, code)
}
