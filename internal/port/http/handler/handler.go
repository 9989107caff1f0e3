package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	ForgotPassword(ctx context.Context, email, answer, newPassword string) error
	UpdateProfile(ctx context.Context, userID string, in service.ProfileInput) (*entity.User, error)
}

type OrderService interface {
	ListBuyerOrders(ctx context.Context, buyerID string) ([]entity.OrderDetails, error)
	ListAllOrders(ctx context.Context) ([]entity.OrderDetails, error)
	UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error)
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateCategory(ctx context.Context, name string) (*entity.Category, error)
	CreateProduct(ctx context.Context, in service.ProductInput, photo *service.PhotoUpload) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
}

var emailRegex = regexp.MustCompile(`^[^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*@([^<>()\[\]\\.,;:\s@"]+\.)+[^<>()\[\]\\.,;:\s@"]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// envelope is the {success, message, ...} body every endpoint answers with.
type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, envelope{"message": message})
}

func writeFailure(w http.ResponseWriter, code int, message string, err error) {
	body := envelope{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, code, body)
}

// decodeJSON tolerates an empty body so that missing fields are reported
// by the per-field checks rather than as a decode failure.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Health answers liveness checks.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
