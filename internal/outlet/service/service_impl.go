package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/internal/orgcontext"
	"github.com/rentline/rentline/internal/outlet/domain"
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
		log:   p.Log.Named("outlet.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOutletRequest) (domain.Outlet, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Outlet{}, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Outlet{}, domain.ErrInvalidName
	}

	state := strings.TrimSpace(req.State)
	if state == "" {
		return domain.Outlet{}, domain.ErrInvalidState
	}

	now := time.Now().UTC()
	outlet := domain.Outlet{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      name,
		State:     state,
		GSTIN:     strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &outlet); err != nil {
		return domain.Outlet{}, err
	}

	return outlet, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Outlet, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	return s.repo.ListByOrg(ctx, s.db, orgID)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Outlet, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Outlet{}, domain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Outlet{}, domain.ErrInvalidID
	}

	outlet, err := s.repo.FindByID(ctx, s.db, orgID, parsed)
	if err != nil {
		return domain.Outlet{}, err
	}
	if outlet == nil {
		return domain.Outlet{}, domain.ErrNotFound
	}
	return *outlet, nil
}
