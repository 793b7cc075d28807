package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/quidpay/quidpay/app/models"
	"github.com/quidpay/quidpay/app/repository"
	"github.com/quidpay/quidpay/internal/pkg/cache"
	"github.com/quidpay/quidpay/internal/pkg/metrics/counter"
)

const productCacheTTL = 5 * time.Minute

// ProductController serves the catalog. Products are immutable after
// creation, which makes the read path safe to cache.
type ProductController struct {
	products repository.ProductRepository
}

func NewProductController(products repository.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

type productRequest struct {
	Name         string `json:"name"`
	PriceInPence int64  `json:"price_in_pence"`
}

func (ctl *ProductController) HandleCreate(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	product := &models.Product{
		Name:         req.Name,
		PriceInPence: req.PriceInPence,
	}
	if err := product.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	if err := ctl.products.Create(product); err != nil {
		log.Printf("product insert failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

const productPageSize = 50

func (ctl *ProductController) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	products, err := ctl.products.List((page-1)*productPageSize, productPageSize)
	if err != nil {
		log.Printf("product listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load products"})
	}

	total, err := ctl.products.Count()
	if err != nil {
		log.Printf("product count failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load products"})
	}

	return c.JSON(fiber.Map{"products": products, "total": total, "page": page})
}

func (ctl *ProductController) HandleGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid product id"})
	}

	if cache.Enabled() {
		if err := counter.AddProductView(uint(id)); err != nil {
			log.Printf("product view counter failed: %v", err)
		}
	}

	cacheKey := productCacheKey(uint(id))
	if cache.Enabled() {
		if raw, err := cache.Get(cacheKey); err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(raw), &product); err == nil {
				return c.JSON(product)
			}
		}
	}

	product, err := ctl.products.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Product not found"})
		}
		log.Printf("product lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Could not load product"})
	}

	if cache.Enabled() {
		if raw, err := json.Marshal(product); err == nil {
			if err := cache.Set(cacheKey, raw, productCacheTTL); err != nil {
				log.Printf("product cache write failed: %v", err)
			}
		}
	}

	return c.JSON(product)
}

func productCacheKey(id uint) string {
	return "product:" + strconv.FormatUint(uint64(id), 10)
}
