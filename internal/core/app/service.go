package app

import (
	"context"
	"fmt"

	apperrors "littlelemon/internal/core/errors"
	"littlelemon/internal/core/ports"
	"littlelemon/internal/data/menu"
	"littlelemon/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type menuService struct {
	repo ports.MenuRepository
}

var _ ports.MenuService = (*menuService)(nil)

func NewMenuService(repo ports.MenuRepository) ports.MenuService {
	return &menuService{repo: repo}
}

// List answers the home screen's current filter state.
func (s *menuService) List(ctx context.Context, f menu.Filter) ([]menu.Item, error) {
	ctx, span := observability.Tracer.Start(ctx, "menuService.List", trace.WithAttributes(
		attribute.Int("menu.filter.categories", len(f.Categories)),
		attribute.Bool("menu.filter.search", f.Search != ""),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, fmt.Errorf("menu repository is required")
	}

	var (
		items []menu.Item
		err   error
	)
	if f.IsEmpty() {
		items, err = s.repo.GetAll(ctx)
	} else {
		items, err = s.repo.Filter(ctx, f)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
		return nil, apperrors.AddContext(err, apperrors.CtxOperation, "list_menu")
	}
	span.SetAttributes(attribute.Int("menu.results", len(items)))
	return items, nil
}

func (s *menuService) Categories(ctx context.Context) ([]string, error) {
	ctx, span := observability.Tracer.Start(ctx, "menuService.Categories")
	defer span.End()

	if s.repo == nil {
		return nil, fmt.Errorf("menu repository is required")
	}
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
		return nil, apperrors.AddContext(err, apperrors.CtxOperation, "list_categories")
	}
	return cats, nil
}
