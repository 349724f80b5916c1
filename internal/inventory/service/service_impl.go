package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/internal/gst"
	"github.com/rentline/rentline/internal/inventory/domain"
	"github.com/rentline/rentline/internal/orgcontext"
	"github.com/rentline/rentline/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("inventory.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.ItemResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ItemResponse{}, domain.ErrInvalidOrganization
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return domain.ItemResponse{}, domain.ErrInvalidSKU
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ItemResponse{}, domain.ErrInvalidName
	}
	if req.UnitPrice.IsNegative() {
		return domain.ItemResponse{}, domain.ErrInvalidUnitPrice
	}
	if req.StockQuantity.IsNegative() {
		return domain.ItemResponse{}, domain.ErrInvalidQuantity
	}

	check := gst.ValidateRate(req.GSTRate)
	if !check.Valid {
		return domain.ItemResponse{}, domain.ErrInvalidGSTRate
	}

	now := time.Now().UTC()
	item := domain.Item{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		SKU:           sku,
		Name:          name,
		HSNCode:       strings.TrimSpace(req.HSNCode),
		GSTRate:       req.GSTRate,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ItemResponse{}, domain.ErrDuplicateSKU
		}
		return domain.ItemResponse{}, err
	}

	return withRateWarning(item), nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateItemRequest) (domain.ItemResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ItemResponse{}, domain.ErrInvalidOrganization
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.ItemResponse{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	if item == nil {
		return domain.ItemResponse{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ItemResponse{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.HSNCode != nil {
		item.HSNCode = strings.TrimSpace(*req.HSNCode)
	}
	if req.GSTRate != nil {
		if check := gst.ValidateRate(*req.GSTRate); !check.Valid {
			return domain.ItemResponse{}, domain.ErrInvalidGSTRate
		}
		item.GSTRate = *req.GSTRate
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return domain.ItemResponse{}, domain.ErrInvalidUnitPrice
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.StockQuantity != nil {
		if req.StockQuantity.IsNegative() {
			return domain.ItemResponse{}, domain.ErrInvalidQuantity
		}
		item.StockQuantity = *req.StockQuantity
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.ItemResponse{}, err
	}

	return withRateWarning(*item), nil
}

func (s *Service) List(ctx context.Context) ([]domain.ItemResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	items, err := s.repo.ListByOrg(ctx, s.db, orgID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, withRateWarning(item))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.ItemResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ItemResponse{}, domain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.ItemResponse{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, parsed)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	if item == nil {
		return domain.ItemResponse{}, domain.ErrNotFound
	}
	return withRateWarning(*item), nil
}

func withRateWarning(item domain.Item) domain.ItemResponse {
	resp := domain.ItemResponse{Item: item}
	if check := gst.ValidateRate(item.GSTRate); check.Valid && !check.Standard {
		resp.RateWarning = check.Message
	}
	return resp
}
