package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Amrsono/Store-2090/internal/domain/apperr"
	"github.com/Amrsono/Store-2090/internal/domain/entity"
	repo "github.com/Amrsono/Store-2090/internal/domain/repository"
	"github.com/Amrsono/Store-2090/pkg/helpers"
)

// maxListLimit bounds catalog page sizes so a caller cannot force an
// unbounded scan.
const maxListLimit = 100

// CatalogService wraps product persistence with validation, the search
// index, and image storage. ES and GCS are optional; a nil client disables
// the corresponding feature.
type CatalogService struct {
	Products  repo.ProductRepository
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewCatalogService(products repo.ProductRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		Products:  products,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		ES:        es,
		ESIndex:   esIndex,
		Logger:    logger,
	}
}

// List returns active products, optionally filtered by category. The limit is
// capped at maxListLimit.
func (s *CatalogService) List(ctx context.Context, category string, limit, offset int) ([]entity.Product, error) {
	f := repo.ProductFilter{Limit: limit, Offset: offset}
	if category != "" {
		c := entity.ProductCategory(category)
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", apperr.ErrInvalidArgument, category)
		}
		f.Category = &c
	}
	if f.Limit <= 0 || f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.Products.ListActive(ctx, f)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*entity.Product, error) {
	return s.Products.GetByID(ctx, id)
}

type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Gradient    string
	Size        string
	Stock       int
	ImageURL    string
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    entity.ProductCategory(in.Category),
		Gradient:    in.Gradient,
		Size:        entity.ProductSize(in.Size),
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if p.Size == "" {
		p.Size = entity.SizeMedium
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Gradient    *string
	Size        *string
	Stock       *int
	ImageURL    *string
	IsActive    *bool
}

func (s *CatalogService) Update(ctx context.Context, id int64, in UpdateProductInput) (*entity.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = entity.ProductCategory(*in.Category)
	}
	if in.Gradient != nil {
		p.Gradient = *in.Gradient
	}
	if in.Size != nil {
		p.Size = entity.ProductSize(*in.Size)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

// Delete deactivates a product. Historical order items keep their reference.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.Products.Deactivate(ctx, id); err != nil {
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

// UploadImage stores a product image in GCS and records its public URL.
func (s *CatalogService) UploadImage(ctx context.Context, id int64, r io.Reader, filename, contentType string) (*entity.Product, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("object storage not configured")
	}
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := fmt.Sprintf("products/%d/%s%s", p.ID, uuid.NewString(), ext)
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	p.ImageURL = url
	if err := s.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

// Search performs a multi_match query on title and description.
// Returns empty results when the search index is not configured.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func validateProduct(p *entity.Product) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", apperr.ErrInvalidArgument)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", apperr.ErrInvalidArgument)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", apperr.ErrInvalidArgument, p.Category)
	}
	if !p.Size.Valid() {
		return fmt.Errorf("%w: unknown size %q", apperr.ErrInvalidArgument, p.Size)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", apperr.ErrInvalidArgument)
	}
	return nil
}

func (s *CatalogService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"size":        p.Size,
		"image_url":   p.ImageURL,
		"is_active":   p.IsActive,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: fmt.Sprintf("%d", p.ID),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "product_id": p.ID}).Warn("es index response error")
	}
}

func (s *CatalogService) removeFromIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: fmt.Sprintf("%d", id)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
