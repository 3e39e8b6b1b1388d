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

// ClientInput carries the full client state; PUT overwrites every field.
type ClientInput struct {
	Name         string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Address      string
	Latitude     float64
	Longitude    float64
	Notes        string
}

// ClientWithStatus decorates a client with its freshness tier, computed at
// request time against the configured thresholds.
type ClientWithStatus struct {
	model.Client
	LastServiced  *time.Time    `json:"last_serviced"`
	ServiceStatus ServiceStatus `json:"service_status"`
}

type ClientService interface {
	List(ctx context.Context) ([]model.Client, error)
	ListWithStatus(ctx context.Context) ([]ClientWithStatus, error)
	Get(ctx context.Context, id uint) (*model.Client, error)
	Create(ctx context.Context, in ClientInput) (*model.Client, error)
	Update(ctx context.Context, id uint, in ClientInput) (*model.Client, error)
	Delete(ctx context.Context, id uint) error

	AddVisitLog(ctx context.Context, clientID uint, notes string, userID *uint) (*model.VisitLog, error)
	ListVisitLogs(ctx context.Context, clientID uint, search string) ([]model.VisitLog, error)
	DeleteVisitLog(ctx context.Context, logID uint) error
}

type clientService struct {
	clientRepo  repository.ClientRepository
	visitRepo   repository.VisitLogRepository
	settingRepo repository.SettingRepository
}

func NewClientService(
	clientRepo repository.ClientRepository,
	visitRepo repository.VisitLogRepository,
	settingRepo repository.SettingRepository,
) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		visitRepo:   visitRepo,
		settingRepo: settingRepo,
	}
}

func (s *clientService) List(ctx context.Context) ([]model.Client, error) {
	return s.clientRepo.List(ctx)
}

func (s *clientService) ListWithStatus(ctx context.Context) ([]ClientWithStatus, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	latest, err := s.clientRepo.LatestVisitTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest visits: %w", err)
	}
	thresholds := s.thresholds(ctx)

	now := time.Now()
	out := make([]ClientWithStatus, 0, len(clients))
	for _, client := range clients {
		var lastServiced *time.Time
		if at, ok := latest[client.ID]; ok {
			t := at
			lastServiced = &t
		}
		out = append(out, ClientWithStatus{
			Client:        client,
			LastServiced:  lastServiced,
			ServiceStatus: ComputeServiceStatus(lastServiced, now, thresholds),
		})
	}
	return out, nil
}

// thresholds loads tier boundaries from settings; missing or corrupt values
// fall back to the defaults.
func (s *clientService) thresholds(ctx context.Context) Thresholds {
	setting, err := s.settingRepo.Get(ctx, model.SettingServiceStatusThresholds)
	if err != nil {
		return DefaultThresholds()
	}
	return ParseThresholds(setting.Value)
}

func (s *clientService) Get(ctx context.Context, id uint) (*model.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup client: %w", err)
	}
	return client, nil
}

func (s *clientService) Create(ctx context.Context, in ClientInput) (*model.Client, error) {
	client := &model.Client{
		Name:         in.Name,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		Address:      in.Address,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Notes:        in.Notes,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, id uint, in ClientInput) (*model.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.ContactName = in.ContactName
	client.ContactPhone = in.ContactPhone
	client.ContactEmail = in.ContactEmail
	client.Address = in.Address
	client.Latitude = in.Latitude
	client.Longitude = in.Longitude
	client.Notes = in.Notes

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}

func (s *clientService) AddVisitLog(ctx context.Context, clientID uint, notes string, userID *uint) (*model.VisitLog, error) {
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}

	log := &model.VisitLog{
		ClientID: clientID,
		Title:    model.VisitTitle(time.Now()),
		Notes:    notes,
		UserID:   userID,
	}
	if err := s.visitRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create visit log: %w", err)
	}
	return log, nil
}

func (s *clientService) ListVisitLogs(ctx context.Context, clientID uint, search string) ([]model.VisitLog, error) {
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.visitRepo.ListByClient(ctx, clientID, search)
}

func (s *clientService) DeleteVisitLog(ctx context.Context, logID uint) error {
	if _, err := s.visitRepo.GetByID(ctx, logID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup visit log: %w", err)
	}
	return s.visitRepo.Delete(ctx, logID)
}
