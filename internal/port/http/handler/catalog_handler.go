package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/shop-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/shop-service/internal/service"
)

const (
	maxMultipartMemory = 10 << 20
	maxPhotoSize       = 1000000
)

type CatalogHandler struct {
	catalog CatalogService
	log     logger.Logger
}

func NewCatalogHandler(catalog CatalogService, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log.Named("CatalogHTTPHandler")}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.log.Errorw("failed to list categories", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Error while getting all categories", err)
		return
	}
	if categories == nil {
		categories = []entity.Category{}
	}
	writeJSON(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "All Categories List",
		"category": categories,
	})
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeMessage(w, http.StatusBadRequest, "Name is required")
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Category Already Exisits"})
			return
		}
		h.log.Errorw("failed to create category", "name", name, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Errro in Category", err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success":  true,
		"message":  "new category created",
		"category": category,
	})
}

// CreateProduct accepts the multipart form posted by the admin product form.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.log.Warnw("failed to parse product form", "error", err)
		writeJSON(w, http.StatusBadRequest, envelope{"error": "Invalid product form"})
		return
	}

	in, msg := productInputFromForm(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, envelope{"error": msg})
		return
	}

	photo, err := photoFromForm(r)
	if err != nil {
		h.log.Warnw("rejected product photo", "error", err)
		writeJSON(w, http.StatusBadRequest, envelope{"error": "photo is Required and should be less then 1mb"})
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), in, photo)
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		writeJSON(w, http.StatusBadRequest, envelope{"error": "Category Not Found"})
		return
	case err != nil:
		h.log.Errorw("failed to create product", "name", in.Name, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Error in crearing product", err)
		return
	}

	h.log.Infow("product created", "product_id", product.ID, "category", product.Category)
	writeJSON(w, http.StatusCreated, envelope{
		"success":  true,
		"message":  "Product Created Successfully",
		"products": product,
	})
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.log.Errorw("failed to list products", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Erorr in getting products", err)
		return
	}
	if products == nil {
		products = []entity.Product{}
	}
	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"countTotal": len(products),
		"message":    "ALlProducts ",
		"products":   products,
	})
}

// productInputFromForm returns the first validation message, or "" when the form is complete.
func productInputFromForm(r *http.Request) (service.ProductInput, string) {
	in := service.ProductInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Category:    strings.TrimSpace(r.FormValue("category")),
	}
	price := strings.TrimSpace(r.FormValue("price"))
	quantity := strings.TrimSpace(r.FormValue("quantity"))

	switch {
	case in.Name == "":
		return in, "Name is Required"
	case in.Description == "":
		return in, "Description is Required"
	case price == "":
		return in, "Price is Required"
	case in.Category == "":
		return in, "Category is Required"
	case quantity == "":
		return in, "Quantity is Required"
	}

	var err error
	if in.Price, err = strconv.ParseFloat(price, 64); err != nil || in.Price < 0 {
		return in, "Price must be a non-negative number"
	}
	if in.Quantity, err = strconv.Atoi(quantity); err != nil || in.Quantity < 0 {
		return in, "Quantity must be a non-negative integer"
	}
	in.Shipping = parseShipping(r.FormValue("shipping"))
	return in, ""
}

func parseShipping(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

var errPhotoTooLarge = errors.New("photo exceeds 1mb")

// photoFromForm returns nil when no photo was attached.
func photoFromForm(r *http.Request) (*service.PhotoUpload, error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if header.Size > maxPhotoSize {
		return nil, errPhotoTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxPhotoSize {
		return nil, errPhotoTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &service.PhotoUpload{FileName: header.Filename, ContentType: contentType, Data: data}, nil
}
