package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"routeview/backend/internal/model"
	"routeview/backend/internal/repository"
)

// RouteInput carries the full route state including the ordered membership
// list; updates replace the membership wholesale.
type RouteInput struct {
	Name        string
	Description string
	ClientIDs   []uint
}

// RouteWithClients is the API shape of a route: the row plus its ordered
// member client ids.
type RouteWithClients struct {
	model.Route
	ClientIDs []uint `json:"client_ids"`
}

// AssignmentWithClients decorates an assignment with its route's ordered
// member clients, for the driver-facing my-routes view.
type AssignmentWithClients struct {
	model.RouteAssignment
	Clients []model.Client `json:"clients"`
}

// BatchResult reports per-date outcomes of a batch assignment; duplicates are
// counted as skipped, never failing the batch.
type BatchResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type RouteService interface {
	List(ctx context.Context) ([]RouteWithClients, error)
	Get(ctx context.Context, id uint) (*RouteWithClients, error)
	Create(ctx context.Context, in RouteInput) (*RouteWithClients, error)
	Update(ctx context.Context, id uint, in RouteInput) (*RouteWithClients, error)
	Delete(ctx context.Context, id uint) error

	Assign(ctx context.Context, routeID uint, actor *model.User, targetUserID uint, date string) (*model.RouteAssignment, error)
	BatchAssign(ctx context.Context, routeID uint, actor *model.User, targetUserID uint, dates []string) (*BatchResult, error)
	// ListSchedule scopes non-admin actors to their own assignments no matter
	// which user filter they request.
	ListSchedule(ctx context.Context, actor *model.User, start, end string, requestedUserID uint) ([]model.RouteAssignment, error)
	MyRoutes(ctx context.Context, userID uint, date string) ([]AssignmentWithClients, error)
	UpdateAssignmentStatus(ctx context.Context, id uint, actor *model.User, status model.AssignmentStatus) (*model.RouteAssignment, error)
	DeleteAssignment(ctx context.Context, id uint, actor *model.User) error
}

type routeService struct {
	routeRepo      repository.RouteRepository
	clientRepo     repository.ClientRepository
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
}

func NewRouteService(
	routeRepo repository.RouteRepository,
	clientRepo repository.ClientRepository,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
) RouteService {
	return &routeService{
		routeRepo:      routeRepo,
		clientRepo:     clientRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
	}
}

func (s *routeService) List(ctx context.Context) ([]RouteWithClients, error) {
	routes, err := s.routeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	out := make([]RouteWithClients, 0, len(routes))
	for _, route := range routes {
		ids, err := s.routeRepo.ListClientIDs(ctx, route.ID)
		if err != nil {
			return nil, fmt.Errorf("list route clients: %w", err)
		}
		out = append(out, RouteWithClients{Route: route, ClientIDs: ids})
	}
	return out, nil
}

func (s *routeService) Get(ctx context.Context, id uint) (*RouteWithClients, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup route: %w", err)
	}
	ids, err := s.routeRepo.ListClientIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list route clients: %w", err)
	}
	return &RouteWithClients{Route: *route, ClientIDs: ids}, nil
}

func (s *routeService) Create(ctx context.Context, in RouteInput) (*RouteWithClients, error) {
	route := &model.Route{Name: in.Name, Description: in.Description}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	kept, err := s.filterExisting(ctx, in.ClientIDs)
	if err != nil {
		return nil, err
	}
	if err := s.routeRepo.ReplaceClients(ctx, route.ID, kept); err != nil {
		return nil, fmt.Errorf("set route clients: %w", err)
	}
	return &RouteWithClients{Route: *route, ClientIDs: kept}, nil
}

func (s *routeService) Update(ctx context.Context, id uint, in RouteInput) (*RouteWithClients, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup route: %w", err)
	}

	route.Name = in.Name
	route.Description = in.Description
	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, fmt.Errorf("update route: %w", err)
	}

	kept, err := s.filterExisting(ctx, in.ClientIDs)
	if err != nil {
		return nil, err
	}
	if err := s.routeRepo.ReplaceClients(ctx, id, kept); err != nil {
		return nil, fmt.Errorf("set route clients: %w", err)
	}
	return &RouteWithClients{Route: *route, ClientIDs: kept}, nil
}

func (s *routeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.routeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup route: %w", err)
	}
	return s.routeRepo.Delete(ctx, id)
}

// filterExisting keeps only ids of existing clients, preserving request order
// and dropping duplicates. Unknown ids are skipped, not rejected.
func (s *routeService) filterExisting(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	clients, err := s.clientRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup clients: %w", err)
	}
	exists := make(map[uint]bool, len(clients))
	for _, c := range clients {
		exists[c.ID] = true
	}

	kept := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if exists[id] && !seen[id] {
			kept = append(kept, id)
			seen[id] = true
		}
	}
	return kept, nil
}

func (s *routeService) Assign(ctx context.Context, routeID uint, actor *model.User, targetUserID uint, date string) (*model.RouteAssignment, error) {
	target, err := s.resolveTarget(ctx, actor, targetUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup route: %w", err)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	assignment := &model.RouteAssignment{
		RouteID: routeID,
		UserID:  target,
		Date:    date,
		Status:  model.AssignmentPending,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAssignment
		}
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return assignment, nil
}

func (s *routeService) BatchAssign(ctx context.Context, routeID uint, actor *model.User, targetUserID uint, dates []string) (*BatchResult, error) {
	target, err := s.resolveTarget(ctx, actor, targetUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup route: %w", err)
	}
	for _, date := range dates {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, ErrInvalidDate
		}
	}

	result := &BatchResult{}
	for _, date := range dates {
		assignment := &model.RouteAssignment{
			RouteID: routeID,
			UserID:  target,
			Date:    date,
			Status:  model.AssignmentPending,
		}
		if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				result.Skipped++
				continue
			}
			return nil, fmt.Errorf("create assignment: %w", err)
		}
		result.Created++
	}
	return result, nil
}

// resolveTarget decides whose assignment is being created: admins may assign
// anyone, members only themselves. Zero means "the actor".
func (s *routeService) resolveTarget(ctx context.Context, actor *model.User, targetUserID uint) (uint, error) {
	if targetUserID == 0 || targetUserID == actor.ID {
		return actor.ID, nil
	}
	if actor.Role != model.RoleAdmin {
		return 0, ErrForbidden
	}
	if _, err := s.userRepo.GetActiveByID(ctx, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("lookup user: %w", err)
	}
	return targetUserID, nil
}

func (s *routeService) ListSchedule(ctx context.Context, actor *model.User, start, end string, requestedUserID uint) ([]model.RouteAssignment, error) {
	if _, err := time.Parse("2006-01-02", start); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		return nil, ErrInvalidDate
	}

	userID := requestedUserID
	if actor.Role != model.RoleAdmin {
		userID = actor.ID
	}
	return s.assignmentRepo.ListRange(ctx, start, end, userID)
}

func (s *routeService) MyRoutes(ctx context.Context, userID uint, date string) ([]AssignmentWithClients, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, ErrInvalidDate
		}
	}
	assignments, err := s.assignmentRepo.ListByUser(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	out := make([]AssignmentWithClients, 0, len(assignments))
	for _, a := range assignments {
		ids, err := s.routeRepo.ListClientIDs(ctx, a.RouteID)
		if err != nil {
			return nil, fmt.Errorf("list route clients: %w", err)
		}
		clients, err := s.orderedClients(ctx, ids)
		if err != nil {
			return nil, err
		}
		out = append(out, AssignmentWithClients{RouteAssignment: a, Clients: clients})
	}
	return out, nil
}

// orderedClients loads clients and re-sorts them by the given id order.
func (s *routeService) orderedClients(ctx context.Context, ids []uint) ([]model.Client, error) {
	clients, err := s.clientRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup clients: %w", err)
	}
	byID := make(map[uint]model.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	ordered := make([]model.Client, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

func (s *routeService) UpdateAssignmentStatus(ctx context.Context, id uint, actor *model.User, status model.AssignmentStatus) (*model.RouteAssignment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	assignment, err := s.getOwnedAssignment(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	assignment.Status = status
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("update assignment: %w", err)
	}
	return assignment, nil
}

func (s *routeService) DeleteAssignment(ctx context.Context, id uint, actor *model.User) error {
	if _, err := s.getOwnedAssignment(ctx, id, actor); err != nil {
		return err
	}
	return s.assignmentRepo.Delete(ctx, id)
}

func (s *routeService) getOwnedAssignment(ctx context.Context, id uint, actor *model.User) (*model.RouteAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup assignment: %w", err)
	}
	if assignment.UserID != actor.ID && actor.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}
	return assignment, nil
}
