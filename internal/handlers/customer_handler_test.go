package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evgenygerasimov/commerce-api/internal/models"
	"github.com/evgenygerasimov/commerce-api/internal/repository"
	"github.com/evgenygerasimov/commerce-api/internal/service"
	"github.com/evgenygerasimov/commerce-api/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type customerFixture struct {
	customers *repository.InMemoryCustomerRepository
	orders    *repository.InMemoryOrderRepository
	router    chi.Router
}

func newCustomerFixture() *customerFixture {
	customers := repository.NewInMemoryCustomerRepository()
	orders := repository.NewInMemoryOrderRepository()
	svc := service.NewCustomerService(customers, orders)
	handler := NewCustomerHandler(svc, logger.New("error"))

	r := chi.NewRouter()
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", handler.ListCustomers)
		r.Post("/", handler.CreateCustomer)
		r.Post("/from-json", handler.CreateCustomerFromJSON)
		r.Get("/{customerId}", handler.GetCustomer)
		r.Get("/{customerId}/json", handler.GetCustomerJSON)
		r.Delete("/{customerId}", handler.DeleteCustomer)
	})

	return &customerFixture{customers: customers, orders: orders, router: r}
}

func TestCreateCustomer(t *testing.T) {
	f := newCustomerFixture()

	body := `{"firstName":"John","lastName":"Doe","email":"johndoe@example.com","contactNumber":"1234567890"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", w.Code, w.Body.String())
	}

	var customer models.Customer
	if err := json.NewDecoder(w.Body).Decode(&customer); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if customer.CustomerID == 0 {
		t.Error("expected an assigned id")
	}
	if customer.Email != "johndoe@example.com" {
		t.Errorf("expected email echoed verbatim, got %s", customer.Email)
	}
	if customer.FirstName != "John" || customer.LastName != "Doe" {
		t.Errorf("unexpected name: %s %s", customer.FirstName, customer.LastName)
	}
}

func TestCreateCustomer_ValidationErrors(t *testing.T) {
	f := newCustomerFixture()

	body := `{"firstName":"","lastName":"Doe","email":"bad","contactNumber":""}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var messages []string
	if err := json.NewDecoder(w.Body).Decode(&messages); err != nil {
		t.Fatalf("failed to decode validation errors: %v", err)
	}

	expected := []string{
		"First name is required.",
		"Invalid email format.",
		"Contact number is required.",
	}
	if len(messages) != len(expected) {
		t.Fatalf("messages = %v, want %v", messages, expected)
	}
	for i := range expected {
		if messages[i] != expected[i] {
			t.Errorf("messages[%d] = %q, want %q", i, messages[i], expected[i])
		}
	}
}

func TestGetCustomer_NotFound(t *testing.T) {
	f := newCustomerFixture()

	req := httptest.NewRequest(http.MethodGet, "/customers/42", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	// Not-found responses are plain message strings.
	if w.Body.String() != "customer with id 42 not found" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestGetCustomer_InvalidID(t *testing.T) {
	f := newCustomerFixture()

	req := httptest.NewRequest(http.MethodGet, "/customers/abc", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response["error"] != "Invalid ID supplied" {
		t.Errorf("error = %q, want 'Invalid ID supplied'", response["error"])
	}
}

func TestGetCustomerJSON(t *testing.T) {
	f := newCustomerFixture()

	customer := models.Customer{FirstName: "John", LastName: "Doe", Email: "johndoe@example.com", ContactNumber: "1234567890"}
	if err := f.customers.Create(context.Background(), &customer); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/customers/1/json", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	// The body is the serialized entity itself.
	var parsed models.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if parsed != customer {
		t.Errorf("body = %+v, want %+v", parsed, customer)
	}
}

func TestCreateCustomerFromJSON(t *testing.T) {
	f := newCustomerFixture()

	body := `{"customerId":7,"firstName":"John","lastName":"Doe","email":"johndoe@example.com","contactNumber":"1234567890"}`
	req := httptest.NewRequest(http.MethodPost, "/customers/from-json", strings.NewReader(body))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var customer models.Customer
	if err := json.NewDecoder(w.Body).Decode(&customer); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if customer.CustomerID != 7 || customer.FirstName != "John" {
		t.Errorf("echo = %+v", customer)
	}

	// The echo endpoint must not persist anything.
	all, err := f.customers.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("customers persisted = %d, want 0", len(all))
	}
}

func TestCreateCustomerFromJSON_Malformed(t *testing.T) {
	f := newCustomerFixture()

	req := httptest.NewRequest(http.MethodPost, "/customers/from-json", strings.NewReader("{oops"))
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "error converting from string") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestDeleteCustomer(t *testing.T) {
	f := newCustomerFixture()

	customer := models.Customer{FirstName: "John", LastName: "Doe", Email: "johndoe@example.com", ContactNumber: "1234567890"}
	if err := f.customers.Create(context.Background(), &customer); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/customers/1", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/customers/1", nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", w.Code)
	}
}
