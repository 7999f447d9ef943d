package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gemura/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

type client struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newClient(t *testing.T) *client {
	t.Helper()
	app, err := New(context.Background(), config.Config{
		JWTSecret:  "test-secret",
		CORSOrigin: "http://localhost:4200",
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	server := httptest.NewServer(app.Router)
	t.Cleanup(server.Close)
	return &client{t: t, server: server}
}

func (c *client) do(method, path string, body any, wantStatus int) envelope {
	c.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.server.URL+path, &payload)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		c.t.Fatalf("%s %s: expected %d, got %d", method, path, wantStatus, resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	return env
}

func unmarshal[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	return out
}

// Walks the whole flow a cooperative accountant would: bootstrap an admin,
// hire an employee, hand out an advance, run a payroll month, approve and
// pay it, then check the ledger and dashboard reflect the payment.
func TestPayrollJourney(t *testing.T) {
	c := newClient(t)

	// First registration bootstraps the admin account.
	c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Administrator",
		"email":    "admin@coop.rw",
		"password": "s3cret",
	}, http.StatusCreated)

	login := c.do(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "admin@coop.rw",
		"password": "s3cret",
	}, http.StatusOK)
	session := unmarshal[struct {
		Token string `json:"token"`
	}](t, login.Data)
	if session.Token == "" {
		t.Fatal("login returned no token")
	}
	c.token = session.Token

	me := c.do(http.MethodGet, "/api/v1/me", nil, http.StatusOK)
	identity := unmarshal[map[string]string](t, me.Data)
	if identity["role"] != "admin" {
		t.Fatalf("bootstrap user should be admin, got %q", identity["role"])
	}

	created := c.do(http.MethodPost, "/api/v1/employees", map[string]any{
		"name":       "Alice Uwase",
		"phone":      "0788000001",
		"role":       "Milker",
		"department": "Production",
		"baseSalary": 150000,
		"hireDate":   "2023-06-01",
	}, http.StatusCreated)
	employee := unmarshal[struct {
		ID string `json:"id"`
	}](t, created.Data)

	advanceResp := c.do(http.MethodPost, "/api/v1/advances", map[string]any{
		"personId":   employee.ID,
		"personType": "employee",
		"amount":     50000,
		"reason":     "School fees",
	}, http.StatusCreated)
	advance := unmarshal[struct {
		ID               string  `json:"id"`
		PersonName       string  `json:"personName"`
		RemainingBalance float64 `json:"remainingBalance"`
	}](t, advanceResp.Data)
	if advance.PersonName != "Alice Uwase" {
		t.Fatalf("advance did not resolve the person name: %q", advance.PersonName)
	}

	generated := c.do(http.MethodPost, "/api/v1/payroll/records", map[string]any{
		"personId":    employee.ID,
		"personType":  "employee",
		"period":      "2025-12",
		"grossAmount": 150000,
	}, http.StatusCreated)
	record := unmarshal[struct {
		ID              string  `json:"id"`
		Status          string  `json:"status"`
		TotalDeductions float64 `json:"totalDeductions"`
		NetAmount       float64 `json:"netAmount"`
	}](t, generated.Data)
	if record.Status != "draft" {
		t.Fatalf("fresh record should be draft, got %q", record.Status)
	}
	// 30% of 150000 caps the 50000 advance at 45000.
	if record.TotalDeductions != 45000 || record.NetAmount != 105000 {
		t.Fatalf("expected 45000/105000, got %v/%v", record.TotalDeductions, record.NetAmount)
	}

	// Paying a draft is rejected.
	payDraft := c.do(http.MethodPost, "/api/v1/payroll/records/"+record.ID+"/pay", map[string]any{
		"paymentMethod": "bank",
	}, http.StatusConflict)
	if payDraft.Error == nil || payDraft.Error.Code != "invalid_transition" {
		t.Fatalf("unexpected error: %+v", payDraft.Error)
	}

	approved := c.do(http.MethodPost, "/api/v1/payroll/records/"+record.ID+"/approve", nil, http.StatusOK)
	approvedRecord := unmarshal[struct {
		Status     string `json:"status"`
		ApprovedBy string `json:"approvedBy"`
	}](t, approved.Data)
	if approvedRecord.Status != "approved" || approvedRecord.ApprovedBy != "admin@coop.rw" {
		t.Fatalf("unexpected approval: %+v", approvedRecord)
	}

	paid := c.do(http.MethodPost, "/api/v1/payroll/records/"+record.ID+"/pay", map[string]any{
		"paymentMethod": "bank",
	}, http.StatusOK)
	paidRecord := unmarshal[struct {
		Status        string `json:"status"`
		PaymentMethod string `json:"paymentMethod"`
	}](t, paid.Data)
	if paidRecord.Status != "paid" || paidRecord.PaymentMethod != "bank" {
		t.Fatalf("unexpected payment: %+v", paidRecord)
	}

	pending := c.do(http.MethodGet, fmt.Sprintf("/api/v1/advances/pending?personType=employee&personId=%s", employee.ID), nil, http.StatusOK)
	balances := unmarshal[[]struct {
		RemainingBalance float64 `json:"remainingBalance"`
		Status           string  `json:"status"`
	}](t, pending.Data)
	if len(balances) != 1 || balances[0].RemainingBalance != 5000 || balances[0].Status != "partial" {
		t.Fatalf("expected one partial advance with 5000 left, got %+v", balances)
	}

	resp, err := http.Get(c.server.URL + "/api/v1/payroll/records/" + record.ID + "/payslip")
	if err != nil {
		t.Fatalf("payslip: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("payslip: expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("payslip: unexpected content type %q", got)
	}

	dashboard := c.do(http.MethodGet, "/api/v1/dashboard", nil, http.StatusOK)
	stats := unmarshal[struct {
		Payroll struct {
			TotalEmployees int     `json:"totalEmployees"`
			TotalAdvances  float64 `json:"totalAdvances"`
		} `json:"payroll"`
	}](t, dashboard.Data)
	if stats.Payroll.TotalEmployees != 1 {
		t.Fatalf("expected 1 employee on the dashboard, got %d", stats.Payroll.TotalEmployees)
	}
	if stats.Payroll.TotalAdvances != 5000 {
		t.Fatalf("expected 5000 outstanding advances, got %v", stats.Payroll.TotalAdvances)
	}
}

func TestApproveRequiresAuthentication(t *testing.T) {
	c := newClient(t)

	c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Administrator",
		"email":    "admin@coop.rw",
		"password": "s3cret",
	}, http.StatusCreated)

	resp := c.do(http.MethodPost, "/api/v1/payroll/records/any-id/approve", nil, http.StatusUnauthorized)
	if resp.Error == nil || resp.Error.Code != "unauthorized" {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

func TestEmployeeListPaging(t *testing.T) {
	c := newClient(t)

	c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Administrator",
		"email":    "admin@coop.rw",
		"password": "s3cret",
	}, http.StatusCreated)

	for _, name := range []string{"Alice", "Bob", "Clara"} {
		c.do(http.MethodPost, "/api/v1/employees", map[string]any{"name": name}, http.StatusCreated)
	}

	type employee struct {
		Name string `json:"name"`
	}

	full := unmarshal[[]employee](t, c.do(http.MethodGet, "/api/v1/employees", nil, http.StatusOK).Data)
	if len(full) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(full))
	}

	page := unmarshal[[]employee](t, c.do(http.MethodGet, "/api/v1/employees?limit=2&offset=1", nil, http.StatusOK).Data)
	if len(page) != 2 || page[0].Name != "Bob" || page[1].Name != "Clara" {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty := unmarshal[[]employee](t, c.do(http.MethodGet, "/api/v1/employees?offset=10", nil, http.StatusOK).Data)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("past-the-end page should be empty, got %+v", empty)
	}
}

func TestDeleteEmployeeIsAdminOnly(t *testing.T) {
	c := newClient(t)

	c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Administrator",
		"email":    "admin@coop.rw",
		"password": "s3cret",
	}, http.StatusCreated)
	login := c.do(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "admin@coop.rw",
		"password": "s3cret",
	}, http.StatusOK)
	adminToken := unmarshal[struct {
		Token string `json:"token"`
	}](t, login.Data).Token
	c.token = adminToken

	c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Clerk",
		"email":    "clerk@coop.rw",
		"password": "pw",
	}, http.StatusCreated)

	created := c.do(http.MethodPost, "/api/v1/employees", map[string]any{"name": "Target"}, http.StatusCreated)
	employee := unmarshal[struct {
		ID string `json:"id"`
	}](t, created.Data)

	c.token = ""
	anon := c.do(http.MethodDelete, "/api/v1/employees/"+employee.ID, nil, http.StatusUnauthorized)
	if anon.Error == nil || anon.Error.Code != "unauthorized" {
		t.Fatalf("unexpected error: %+v", anon.Error)
	}

	clerkLogin := c.do(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "clerk@coop.rw",
		"password": "pw",
	}, http.StatusOK)
	c.token = unmarshal[struct {
		Token string `json:"token"`
	}](t, clerkLogin.Data).Token
	denied := c.do(http.MethodDelete, "/api/v1/employees/"+employee.ID, nil, http.StatusForbidden)
	if denied.Error == nil || denied.Error.Code != "forbidden" {
		t.Fatalf("unexpected error: %+v", denied.Error)
	}

	c.token = adminToken
	c.do(http.MethodDelete, "/api/v1/employees/"+employee.ID, nil, http.StatusOK)
	c.do(http.MethodGet, "/api/v1/employees/"+employee.ID, nil, http.StatusNotFound)
}

func TestSecondRegistrationNeedsAdmin(t *testing.T) {
	c := newClient(t)

	c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Administrator",
		"email":    "admin@coop.rw",
		"password": "s3cret",
	}, http.StatusCreated)

	// Anonymous signup is closed once an account exists.
	denied := c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Intruder",
		"email":    "intruder@coop.rw",
		"password": "pw",
	}, http.StatusForbidden)
	if denied.Error == nil || denied.Error.Code != "forbidden" {
		t.Fatalf("unexpected error: %+v", denied.Error)
	}

	login := c.do(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "admin@coop.rw",
		"password": "s3cret",
	}, http.StatusOK)
	session := unmarshal[struct {
		Token string `json:"token"`
	}](t, login.Data)
	c.token = session.Token

	c.do(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Clerk",
		"email":    "clerk@coop.rw",
		"password": "pw",
	}, http.StatusCreated)
}
