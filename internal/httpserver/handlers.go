package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authdomain "retailstore/backend/internal/domain/auth"
	customerdomain "retailstore/backend/internal/domain/customer"
	customerusecase "retailstore/backend/internal/usecase/customer"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/", http.HandlerFunc(s.handleRoot))
	s.router.Handle("/generateToken", http.HandlerFunc(s.handleGenerateToken))
	s.router.Handle("/customers", http.HandlerFunc(s.handleCustomers))
	// All operations under /customers/{id} mutate state, so the whole
	// subtree is gated.
	s.router.Handle("/customers/", s.authMiddleware(http.HandlerFunc(s.handleCustomerByID)))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Welcome to the Retail Store API"))
}

func (s *Server) handleGenerateToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}

	token, err := s.authService.Issue(payload.Username)
	if err != nil {
		if errors.Is(err, authdomain.ErrUsernameRequired) {
			writeError(w, http.StatusBadRequest, "Username is required")
			return
		}
		writeErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListCustomers(w, r)
	case http.MethodPost:
		// Create requires a proven identity; reads stay open.
		r, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		s.handleCreateCustomer(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	filter := customerdomain.Filter{
		Username: r.URL.Query().Get("username"),
		Email:    r.URL.Query().Get("email"),
	}

	customers, err := s.customerService.List(r.Context(), filter)
	if err != nil {
		writeErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	writeData(w, http.StatusOK, customers, "Customers retrieved successfully")
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var payload customerusecase.Input
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	cust, err := s.customerService.Create(r.Context(), payload)
	if err != nil {
		s.writeCustomerError(w, err)
		return
	}
	writeData(w, http.StatusCreated, cust, "Customer created successfully")
}

func (s *Server) handleCustomerByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/customers/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var payload customerusecase.Input
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		cust, err := s.customerService.Update(r.Context(), id, payload)
		if err != nil {
			s.writeCustomerError(w, err)
			return
		}
		writeData(w, http.StatusOK, cust, "Customer updated successfully")
	case http.MethodDelete:
		if err := s.customerService.Delete(r.Context(), id); err != nil {
			s.writeCustomerError(w, err)
			return
		}
		writeData(w, http.StatusOK, map[string]string{"id": id}, "Customer deleted successfully")
	default:
		writeMethodNotAllowed(w, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) writeCustomerError(w http.ResponseWriter, err error) {
	var validation *customerdomain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeErrorDetail(w, http.StatusBadRequest, "Missing required fields", strings.Join(validation.Fields, ", "))
	case errors.Is(err, customerdomain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Customer not found")
	default:
		writeErrorDetail(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// authenticate verifies the bearer token and, on success, returns the
// request with the claims attached to its context. A missing or malformed
// Authorization header is treated as absent credentials (401); a token that
// fails verification is rejected as invalid (403).
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (*http.Request, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	claims, err := s.authService.Verify(token)
	if err != nil {
		if errors.Is(err, authdomain.ErrMissingToken) {
			writeError(w, http.StatusUnauthorized, authdomain.ErrMissingToken.Error())
		} else {
			writeError(w, http.StatusForbidden, authdomain.ErrInvalidToken.Error())
		}
		return r, false
	}

	ctx := context.WithValue(r.Context(), ctxKeyClaims{}, claims)
	return r.WithContext(ctx), true
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r, ok := s.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKeyClaims struct{}

// ClaimsFromContext returns the verified claims attached by the auth gate.
// Handlers behind the gate may consult it; none currently do.
func ClaimsFromContext(ctx context.Context) (*authdomain.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims{}).(*authdomain.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
