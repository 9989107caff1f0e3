// Package productform is the client side of the admin "create product" page:
// it loads the category options and posts a multipart product to the API.
package productform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
)

const (
	categoriesPath = "/api/v1/category/get-category"
	createPath     = "/api/v1/product/create-product"

	// ProductsPage is where the form navigates after a successful create.
	ProductsPage = "/dashboard/admin/products"

	MsgCategoryLoadFailed = "Something went wrong in getting category"
	MsgProductCreated     = "Product Created Successfully"
	MsgSubmitFailed       = "something went wrong"
)

var ErrUnknownCategory = errors.New("unknown category")

// Notifier shows toast-style messages to the operator.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator moves the operator to another page.
type Navigator func(path string)

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Photo is the optional image attached to the product.
type Photo struct {
	FileName string
	Data     []byte
}

// Fields holds the current values of the form inputs.
type Fields struct {
	Name        string
	Description string
	Price       string
	Quantity    string
	Shipping    string
	Category    string
	Photo       *Photo
}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type Form struct {
	baseURL  string
	token    string
	client   *http.Client
	notifier Notifier
	navigate Navigator
	log      logger.Logger

	mu         sync.Mutex
	categories []Category
	fields     Fields
	loading    bool
	submitting bool
}

func New(cfg Config, notifier Notifier, navigate Navigator, log logger.Logger) *Form {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Form{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		client:   &http.Client{Timeout: timeout},
		notifier: notifier,
		navigate: navigate,
		log:      log.Named("ProductForm"),
	}
}

type categoriesResponse struct {
	Success  bool       `json:"success"`
	Message  string     `json:"message"`
	Category []Category `json:"category"`
}

type createResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Load fetches the category options. A call made while a load is in flight is a no-op.
func (f *Form) Load(ctx context.Context) error {
	if !f.begin(&f.loading) {
		return nil
	}
	defer f.end(&f.loading)

	categories, err := f.fetchCategories(ctx)
	if err != nil {
		f.log.Errorw("failed to load categories", "error", err)
		f.notifier.Error(MsgCategoryLoadFailed)
		return err
	}

	f.mu.Lock()
	f.categories = categories
	f.mu.Unlock()
	f.log.Debugf("loaded %d categories", len(categories))
	return nil
}

func (f *Form) fetchCategories(ctx context.Context) ([]Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+categoriesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build categories request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer resp.Body.Close()

	var body categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode categories (status %d): %w", resp.StatusCode, err)
	}
	if !body.Success {
		return nil, fmt.Errorf("categories request rejected with status %d: %s", resp.StatusCode, body.Message)
	}

	seen := make(map[string]struct{}, len(body.Category))
	categories := make([]Category, 0, len(body.Category))
	for _, c := range body.Category {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		categories = append(categories, c)
	}
	return categories, nil
}

// Categories returns a copy of the loaded options.
func (f *Form) Categories() []Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Category, len(f.categories))
	copy(out, f.categories)
	return out
}

// SelectCategory sets the category field from an option's name or id.
func (f *Form) SelectCategory(nameOrID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.ID == nameOrID || strings.EqualFold(c.Name, nameOrID) {
			f.fields.Category = c.ID
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCategory, nameOrID)
}

// SetFields replaces the form values, keeping the selected category when in.Category is empty.
func (f *Form) SetFields(in Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.Category == "" {
		in.Category = f.fields.Category
	}
	f.fields = in
}

func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Submit posts the current values. The server decides validity, and its
// message is surfaced verbatim when it answers with success=false.
func (f *Form) Submit(ctx context.Context) error {
	if !f.begin(&f.submitting) {
		return nil
	}
	defer f.end(&f.submitting)

	body, contentType, err := encodeFields(f.Fields())
	if err != nil {
		f.log.Errorw("failed to encode product form", "error", err)
		f.notifier.Error(MsgSubmitFailed)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+createPath, body)
	if err != nil {
		f.notifier.Error(MsgSubmitFailed)
		return fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", f.token)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Errorw("create product request failed", "error", err)
		f.notifier.Error(MsgSubmitFailed)
		return fmt.Errorf("post product: %w", err)
	}
	defer resp.Body.Close()

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		f.log.Errorw("unexpected create product response", "status", resp.StatusCode, "error", err)
		f.notifier.Error(MsgSubmitFailed)
		return fmt.Errorf("decode create response (status %d): %w", resp.StatusCode, err)
	}

	if out.Success {
		f.notifier.Success(MsgProductCreated)
		if f.navigate != nil {
			f.navigate(ProductsPage)
		}
		return nil
	}

	msg := out.Message
	if msg == "" {
		msg = out.Error
	}
	if msg == "" {
		msg = MsgSubmitFailed
	}
	f.log.Warnw("product rejected", "status", resp.StatusCode, "message", msg)
	f.notifier.Error(msg)
	return &RejectedError{StatusCode: resp.StatusCode, Message: msg}
}

// RejectedError is returned when the server answers without success.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return "product rejected (" + strconv.Itoa(e.StatusCode) + "): " + e.Message
}

func encodeFields(in Fields) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	for _, kv := range [][2]string{
		{"name", in.Name},
		{"description", in.Description},
		{"price", in.Price},
		{"quantity", in.Quantity},
		{"category", in.Category},
		{"shipping", in.Shipping},
	} {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}

	if in.Photo != nil && len(in.Photo.Data) > 0 {
		part, err := mw.CreateFormFile("photo", in.Photo.FileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(in.Photo.Data); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

func (f *Form) begin(flag *bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if *flag {
		return false
	}
	*flag = true
	return true
}

func (f *Form) end(flag *bool) {
	f.mu.Lock()
	*flag = false
	f.mu.Unlock()
}
