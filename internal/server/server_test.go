package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/payroll-tracker/internal/server"
	"github.com/rezonia/payroll-tracker/internal/store"
)

const sampleFolio = "AAF2E05C-30D2-4A4B-9106-5FEA520B05D7"

const sampleReceipt = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Version="4.0" SubTotal="15000.00">
  <cfdi:Emisor Rfc="AAA010101AAA" Nombre="ACME SA DE CV"/>
  <cfdi:Complemento>
    <nomina12:Nomina xmlns:nomina12="http://www.sat.gob.mx/nomina12" Version="1.2" FechaInicialPago="2024-01-01" FechaFinalPago="2024-01-15">
      <nomina12:Receptor Puesto="Backend Developer"/>
      <nomina12:Deducciones>
        <nomina12:Deduccion TipoDeduccion="001" Importe="450.50"/>
        <nomina12:Deduccion TipoDeduccion="002" Importe="2100.75"/>
      </nomina12:Deducciones>
    </nomina12:Nomina>
    <tfd:TimbreFiscalDigital xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital" Version="1.1" UUID="` + sampleFolio + `"/>
  </cfdi:Complemento>
</cfdi:Comprobante>`

func receiptWithFolio(folio string) string {
	return strings.Replace(sampleReceipt, sampleFolio, folio, 1)
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	config := &server.Config{
		Address:    ":8080",
		DBPassword: "secret",
		Debug:      true,
	}
	return server.NewServer(config, st, nil)
}

func doRequest(t *testing.T, srv *server.Server, method, path string, body *bytes.Buffer, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestProcessPayrollEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/v1/payroll/process",
		bytes.NewBufferString(sampleReceipt), map[string]string{"Content-Type": "application/xml"})
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Record)
	assert.Equal(t, sampleFolio, response.Record.FiscalFolio)
	assert.Equal(t, "ACME SA DE CV", response.Record.Client)
	assert.Equal(t, "450.50", response.Record.IMSS)
}

func TestProcessPayrollEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/v1/payroll/process", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessPayrollEndpoint_InvalidXML(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/v1/payroll/process",
		bytes.NewBufferString("not xml"), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportPayrollEndpoint_Batch(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"c.xml": receiptWithFolio("CCCCCCCC-0000-0000-0000-000000000000"),
		"a.xml": "<broken",
		"b.xml": receiptWithFolio("BBBBBBBB-0000-0000-0000-000000000000"),
	})

	w := doRequest(t, srv, http.MethodPost, "/api/v1/payroll/import", body,
		map[string]string{"Content-Type": contentType})
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.Imported, 2)
	assert.Equal(t, "BBBBBBBB-0000-0000-0000-000000000000", response.Imported[0].FiscalFolio)
	assert.Equal(t, "CCCCCCCC-0000-0000-0000-000000000000", response.Imported[1].FiscalFolio)
	assert.InDelta(t, 12448.75, response.Imported[0].NetIncome, 0.001)

	require.Len(t, response.Failures, 1)
	assert.Equal(t, "a.xml", response.Failures[0].File)
}

func TestImportPayrollEndpoint_DuplicateFolio(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{"first.xml": sampleReceipt})
	w := doRequest(t, srv, http.MethodPost, "/api/v1/payroll/import", body,
		map[string]string{"Content-Type": contentType})
	assert.Equal(t, http.StatusOK, w.Code)

	body, contentType = multipartBody(t, map[string]string{"again.xml": sampleReceipt})
	w = doRequest(t, srv, http.MethodPost, "/api/v1/payroll/import", body,
		map[string]string{"Content-Type": contentType})
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Imported)
	require.Len(t, response.Failures, 1)
	assert.Contains(t, response.Failures[0].Error, "already imported")
}

func TestListIncomesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{"r.xml": sampleReceipt})
	w := doRequest(t, srv, http.MethodPost, "/api/v1/payroll/import", body,
		map[string]string{"Content-Type": contentType})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/incomes?client=ACME", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ListIncomesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Incomes, 1)
	assert.Equal(t, sampleFolio, response.Incomes[0].FiscalFolio)
}

func TestExpenseEndpoints_CRUD(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"category_id":1,"expense_type_id":1,"amount":250.0,"date":"2024-03-10T00:00:00Z","vendor":"Soriana"}`
	w := doRequest(t, srv, http.MethodPost, "/api/v1/expenses",
		bytes.NewBufferString(payload), map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := int(created["ID"].(float64))
	require.NotZero(t, id)

	w = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/expenses/%d", id), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	update := `{"vendor":"Chedraui"}`
	w = doRequest(t, srv, http.MethodPut, fmt.Sprintf("/api/v1/expenses/%d", id),
		bytes.NewBufferString(update), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chedraui")

	w = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/expenses/%d", id), nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/expenses/%d", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpenseEndpoints_CreateInvalid(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"category_id":1,"expense_type_id":1,"amount":0}`
	w := doRequest(t, srv, http.MethodPost, "/api/v1/expenses",
		bytes.NewBufferString(payload), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestImportExpensesCSVEndpoint(t *testing.T) {
	srv := newTestServer(t)

	csv := strings.Join([]string{
		"date,category_id,subcategory_id,expense_type_id,payment_method_id,amount,tax,vendor,location,description,notes",
		"2024-05-01,1,,1,2,120.50,19.28,Oxxo,CDMX,snacks,",
		"bad-date,1,,1,,50.00,,Oxxo,,bad row,",
	}, "\n")

	w := doRequest(t, srv, http.MethodPost, "/api/v1/expenses/import",
		bytes.NewBufferString(csv), map[string]string{"Content-Type": "text/csv"})
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.CSVImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Inserted)
	assert.Len(t, response.Failures, 1)
}

func TestCatalogEndpoints(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodPost, "/api/v1/catalogs/expense_categories",
		bytes.NewBufferString(`{"name":"Groceries"}`), map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/catalogs/expense_categories", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Entries, 1)
	assert.Equal(t, "Groceries", response.Entries[0].Name)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/catalogs/unknown", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDatabaseEndpoints_PasswordGate(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/database", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/database", nil,
		map[string]string{"X-DB-Password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/database", nil,
		map[string]string{"X-DB-Password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, w.Body.Len())
}

func TestDatabaseEndpoints_ReplaceRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	auth := map[string]string{"X-DB-Password": "secret"}

	body, contentType := multipartBody(t, map[string]string{"r.xml": sampleReceipt})
	w := doRequest(t, srv, http.MethodPost, "/api/v1/payroll/import", body,
		map[string]string{"Content-Type": contentType})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/database", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	snapshot := make([]byte, w.Body.Len())
	copy(snapshot, w.Body.Bytes())

	w = doRequest(t, srv, http.MethodPut, "/api/v1/database", bytes.NewBuffer(snapshot), auth)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, srv, http.MethodGet, "/api/v1/incomes", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ListIncomesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Count)
}

func TestDatabaseEndpoints_DisabledWithoutPassword(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "nopass.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv := server.NewServer(&server.Config{Address: ":8080", Debug: true}, st, nil)

	w := doRequest(t, srv, http.MethodGet, "/api/v1/database", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
