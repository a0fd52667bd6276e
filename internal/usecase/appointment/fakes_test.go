package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/agendaflow/salon-scheduler/internal/domain/appointment"
	"github.com/agendaflow/salon-scheduler/internal/domain/settlement"
	"github.com/agendaflow/salon-scheduler/internal/events"
	"github.com/agendaflow/salon-scheduler/internal/httperr"
	"github.com/agendaflow/salon-scheduler/internal/models"
)

// ======================================================
// FAKE: repositório de agendamentos
// ======================================================

// fakeRepo guarda tudo em memória. O mutex faz o papel da transação com
// FOR UPDATE: a revalidação de sobreposição e o insert são atômicos, como
// no repositório real.
type fakeRepo struct {
	mu sync.Mutex

	company      *models.Company
	collaborator *models.Collaborator
	services     map[uint]models.Service
	rules        map[uint]models.CommissionRule
	windows      []models.WorkingWindow
	exception    *models.ScheduleException

	clients      []*models.Client
	appointments []*models.Appointment

	nextID uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		company: &models.Company{
			ID:                1,
			Name:              "Studio Aurora",
			Slug:              "studio-aurora",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 120,
		},
		collaborator: &models.Collaborator{ID: 7, CompanyID: 1, Name: "Rafa", Active: true},
		services: map[uint]models.Service{
			1: {ID: 1, CompanyID: 1, Name: "Corte", DurationMin: 60, Price: 100, Active: true},
			2: {ID: 2, CompanyID: 1, Name: "Barba", DurationMin: 30, Price: 40, Active: true},
		},
		rules: map[uint]models.CommissionRule{
			1: {ID: 1, CollaboratorID: 7, ServiceID: 1, CommissionType: models.CommissionPercent, CommissionValue: 20, Active: true},
		},
		windows: []models.WorkingWindow{
			{ID: 1, CollaboratorID: 7, Weekday: 1, StartTime: "09:00", EndTime: "18:00", Active: true},
		},
	}
}

func (f *fakeRepo) GetCompanyByID(_ context.Context, id uint) (*models.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.company, nil
}

func (f *fakeRepo) GetCompanyBySlug(_ context.Context, slug string) (*models.Company, error) {
	if f.company == nil || f.company.Slug != slug {
		return nil, gorm.ErrRecordNotFound
	}
	return f.company, nil
}

func (f *fakeRepo) ListActiveServices(_ context.Context, companyID uint) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.CompanyID == companyID && svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListServices(_ context.Context, companyID uint, serviceIDs []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range serviceIDs {
		if svc, ok := f.services[id]; ok && svc.CompanyID == companyID && svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetActiveCommissionRules(_ context.Context, collaboratorID uint, serviceIDs []uint) (map[uint]models.CommissionRule, error) {
	out := make(map[uint]models.CommissionRule)
	for _, id := range serviceIDs {
		if rule, ok := f.rules[id]; ok && rule.CollaboratorID == collaboratorID && rule.Active {
			out[id] = rule
		}
	}
	return out, nil
}

func (f *fakeRepo) ListCollaborators(_ context.Context, companyID uint) ([]models.Collaborator, error) {
	if f.collaborator != nil && f.collaborator.CompanyID == companyID {
		return []models.Collaborator{*f.collaborator}, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetCollaborator(_ context.Context, companyID, collaboratorID uint) (*models.Collaborator, error) {
	if f.collaborator == nil || f.collaborator.ID != collaboratorID || f.collaborator.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.collaborator, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, companyID uint, name, phone, email string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.clients {
		if c.Phone == phone {
			if c.CompanyID == nil {
				cid := companyID
				c.CompanyID = &cid
			}
			return c, nil
		}
	}

	f.nextID++
	cid := companyID
	client := &models.Client{ID: f.nextID, CompanyID: &cid, Name: name, Phone: phone, Email: email}
	f.clients = append(f.clients, client)
	return client, nil
}

func (f *fakeRepo) ListWorkingWindows(_ context.Context, collaboratorID uint, weekday int) ([]models.WorkingWindow, error) {
	var out []models.WorkingWindow
	for _, w := range f.windows {
		if w.CollaboratorID == collaboratorID && w.Weekday == weekday {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetScheduleException(_ context.Context, collaboratorID uint, date string) (*models.ScheduleException, error) {
	if f.exception != nil && f.exception.CollaboratorID == collaboratorID && f.exception.Date == date {
		return f.exception, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, collaboratorID uint, dayStart, dayEnd time.Time, excludeID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CollaboratorID != collaboratorID || ap.ID == excludeID {
			continue
		}
		if !domain.Status(ap.Status).OccupiesSlot() {
			continue
		}
		if ap.StartTime.Before(dayEnd) && ap.EndTime.After(dayStart) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment, lines []models.AppointmentService) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.overlapsLocked(ap.CollaboratorID, ap.StartTime, ap.EndTime, 0) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	f.nextID++
	ap.ID = f.nextID
	for i := range lines {
		lines[i].AppointmentID = ap.ID
	}
	ap.Services = lines
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) RescheduleAppointment(_ context.Context, ap *models.Appointment, lines []models.AppointmentService) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.overlapsLocked(ap.CollaboratorID, ap.StartTime, ap.EndTime, ap.ID) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	if len(lines) > 0 {
		for i := range lines {
			lines[i].AppointmentID = ap.ID
		}
		ap.Services = lines
	}
	return nil
}

func (f *fakeRepo) GetAppointmentForCollaborator(_ context.Context, appointmentID, collaboratorID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.CollaboratorID == collaboratorID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointmentStatus(_ context.Context, _ *models.Appointment) error {
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, collaboratorID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CollaboratorID == collaboratorID && ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) overlapsLocked(collaboratorID uint, start, end time.Time, excludeID uint) bool {
	for _, other := range f.appointments {
		if other.CollaboratorID != collaboratorID || other.ID == excludeID {
			continue
		}
		if !domain.Status(other.Status).OccupiesSlot() {
			continue
		}
		if start.Before(other.EndTime) && other.StartTime.Before(end) {
			return true
		}
	}
	return false
}

// ======================================================
// FAKE: repositório de liquidação
// ======================================================

type fakeSettleRepo struct {
	mu sync.Mutex

	appts    *fakeRepo
	products map[uint]*models.Product

	commits []settlement.CommitInput
}

var _ settlement.Repository = (*fakeSettleRepo)(nil)

func newFakeSettleRepo(appts *fakeRepo) *fakeSettleRepo {
	return &fakeSettleRepo{
		appts: appts,
		products: map[uint]*models.Product{
			50: {ID: 50, CompanyID: 1, Name: "Pomada", UnitPrice: 30, StockQuantity: 10, Active: true},
		},
	}
}

func (f *fakeSettleRepo) GetActiveRules(ctx context.Context, collaboratorID uint, serviceIDs []uint) (map[uint]models.CommissionRule, error) {
	return f.appts.GetActiveCommissionRules(ctx, collaboratorID, serviceIDs)
}

func (f *fakeSettleRepo) ListProducts(_ context.Context, companyID uint, productIDs []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range productIDs {
		if p, ok := f.products[id]; ok && p.CompanyID == companyID && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeSettleRepo) CommitSettlement(ctx context.Context, in settlement.CommitInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var target *models.Appointment
	for _, ap := range f.appts.appointments {
		if ap.ID == in.AppointmentID {
			target = ap
			break
		}
	}
	if target == nil {
		return gorm.ErrRecordNotFound
	}

	// mesmo guard revalidado pela transação real
	if !domain.Status(target.Status).IsActive() {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	target.Status = string(domain.StatusCompleted)
	completedAt := in.CompletedAt
	target.CompletedAt = &completedAt

	f.commits = append(f.commits, in)
	return nil
}

func (f *fakeSettleRepo) DecrementStock(_ context.Context, productID uint, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[productID]
	if !ok || p.StockQuantity < quantity {
		return errors.New("estoque insuficiente")
	}
	p.StockQuantity -= quantity
	return nil
}

// ======================================================
// HELPERS
// ======================================================

// testDispatcher roda sem banco e sem redis; a trilha fica só no canal
// assíncrono e é descartada.
func testDispatcher() *events.Dispatcher {
	return events.NewDispatcher(nil, nil)
}
