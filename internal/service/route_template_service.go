package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
)

type RouteTemplateInput struct {
	Name           string
	Description    string
	ClientIDs      []uint
	RecurrenceDays []string
}

// TemplateWithClients is the API shape of a template: the row plus the
// decoded client-id list and recurrence days.
type TemplateWithClients struct {
	model.RouteTemplate
	ClientIDs      []uint   `json:"client_ids"`
	RecurrenceDays []string `json:"recurrence_days,omitempty"`
}

type RouteTemplateService interface {
	List(ctx context.Context) ([]TemplateWithClients, error)
	Get(ctx context.Context, id uint) (*TemplateWithClients, error)
	Create(ctx context.Context, createdBy uint, in RouteTemplateInput) (*TemplateWithClients, error)
	Update(ctx context.Context, id uint, in RouteTemplateInput) (*TemplateWithClients, error)
	Delete(ctx context.Context, id uint) error
	// CreateRoute materializes a new route from the template's stored id
	// list. Ids pointing at deleted clients silently vanish, same as route
	// membership construction.
	CreateRoute(ctx context.Context, templateID uint, name string) (*RouteWithClients, error)
	// SnapshotRoute does the inverse: saves a route's current ordered
	// membership as a new template.
	SnapshotRoute(ctx context.Context, routeID uint, name string, createdBy uint) (*TemplateWithClients, error)
}

type routeTemplateService struct {
	templateRepo repository.RouteTemplateRepository
	routeService RouteService
	routeRepo    repository.RouteRepository
}

func NewRouteTemplateService(
	templateRepo repository.RouteTemplateRepository,
	routeService RouteService,
	routeRepo repository.RouteRepository,
) RouteTemplateService {
	return &routeTemplateService{
		templateRepo: templateRepo,
		routeService: routeService,
		routeRepo:    routeRepo,
	}
}

func decorate(tmpl model.RouteTemplate) TemplateWithClients {
	return TemplateWithClients{
		RouteTemplate:  tmpl,
		ClientIDs:      tmpl.ClientIDList(),
		RecurrenceDays: tmpl.RecurrenceDayList(),
	}
}

func (s *routeTemplateService) List(ctx context.Context) ([]TemplateWithClients, error) {
	tmpls, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := make([]TemplateWithClients, 0, len(tmpls))
	for _, tmpl := range tmpls {
		out = append(out, decorate(tmpl))
	}
	return out, nil
}

func (s *routeTemplateService) Get(ctx context.Context, id uint) (*TemplateWithClients, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup template: %w", err)
	}
	out := decorate(*tmpl)
	return &out, nil
}

func (s *routeTemplateService) Create(ctx context.Context, createdBy uint, in RouteTemplateInput) (*TemplateWithClients, error) {
	tmpl := &model.RouteTemplate{
		Name:           in.Name,
		Description:    in.Description,
		ClientIDs:      model.EncodeIDList(in.ClientIDs),
		RecurrenceDays: model.EncodeDayList(in.RecurrenceDays),
		CreatedByID:    createdBy,
	}
	if err := s.templateRepo.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	out := decorate(*tmpl)
	return &out, nil
}

func (s *routeTemplateService) Update(ctx context.Context, id uint, in RouteTemplateInput) (*TemplateWithClients, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup template: %w", err)
	}

	tmpl.Name = in.Name
	tmpl.Description = in.Description
	tmpl.ClientIDs = model.EncodeIDList(in.ClientIDs)
	tmpl.RecurrenceDays = model.EncodeDayList(in.RecurrenceDays)

	if err := s.templateRepo.Update(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	out := decorate(*tmpl)
	return &out, nil
}

func (s *routeTemplateService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id)
}

func (s *routeTemplateService) CreateRoute(ctx context.Context, templateID uint, name string) (*RouteWithClients, error) {
	tmpl, err := s.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = tmpl.Name
	}
	return s.routeService.Create(ctx, RouteInput{
		Name:        name,
		Description: tmpl.Description,
		ClientIDs:   tmpl.ClientIDs,
	})
}

func (s *routeTemplateService) SnapshotRoute(ctx context.Context, routeID uint, name string, createdBy uint) (*TemplateWithClients, error) {
	route, err := s.routeService.Get(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = route.Name
	}
	return s.Create(ctx, createdBy, RouteTemplateInput{
		Name:        name,
		Description: route.Description,
		ClientIDs:   route.ClientIDs,
	})
}
