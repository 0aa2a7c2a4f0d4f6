package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/clinica-vet-api/internal/domain"
	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository           = (*productRepo)(nil)
	_ repository.InventoryMovementRepository = (*movementRepo)(nil)
	_ repository.ServiceRepository           = (*serviceRepo)(nil)
	_ repository.SaleRepository              = (*saleRepo)(nil)
	_ repository.CashFlowRepository          = (*cashFlowRepo)(nil)
	_ repository.AppointmentRepository       = (*appointmentRepo)(nil)
)

// ── productos ────────────────────────────────────────────────────────────────

type productRepo struct{ v *view }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate no necesita bloqueo propio: las transacciones en memoria ya son exclusivas.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(_ context.Context, id string, quantity int, unitCost decimal.Decimal) error {
	return r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return fmt.Errorf("update stock %s: %w", id, domain.ErrProductNotFound)
		}
		p.Quantity = quantity
		p.UnitCost = unitCost
		p.UpdatedAt = time.Now()
		st.products[id] = p
		return nil
	})
}

func (r *productRepo) filter(keep func(p *entity.Product) bool) []*entity.Product {
	var list []*entity.Product
	r.v.read(func(st *state) {
		for _, p := range st.products {
			p := p
			if keep(&p) {
				list = append(list, &p)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	all := r.filter(func(*entity.Product) bool { return true })
	return page(all, limit, offset), nil
}

func (r *productRepo) ListBelowReorder(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.BelowReorder() }), nil
}

func (r *productRepo) ListExpiringBefore(_ context.Context, before time.Time) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool {
		return p.ExpiryDate != nil && p.ExpiryDate.Before(before)
	}), nil
}

// ── movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct{ v *view }

func (r *movementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return r.v.write(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *movementRepo) list(keep func(m *entity.InventoryMovement) bool) []*entity.InventoryMovement {
	var list []*entity.InventoryMovement
	r.v.read(func(st *state) {
		for i := range st.movements {
			m := st.movements[i]
			if keep(&m) {
				list = append(list, &m)
			}
		}
	})
	return list
}

func (r *movementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryMovement, error) {
	return r.list(func(m *entity.InventoryMovement) bool { return m.ProductID == productID }), nil
}

func (r *movementRepo) ListByReference(_ context.Context, reference string) ([]*entity.InventoryMovement, error) {
	return r.list(func(m *entity.InventoryMovement) bool { return m.Reference == reference }), nil
}

// ── servicios ────────────────────────────────────────────────────────────────

type serviceRepo struct{ v *view }

func copyService(s entity.Service) *entity.Service {
	s.Supplies = append([]entity.ServiceSupply(nil), s.Supplies...)
	return &s
}

func (r *serviceRepo) Create(_ context.Context, s *entity.Service) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return r.v.write(func(st *state) error {
		if _, ok := st.services[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.services[s.ID] = *copyService(*s)
		return nil
	})
}

func (r *serviceRepo) GetByID(_ context.Context, id string) (*entity.Service, error) {
	var out *entity.Service
	r.v.read(func(st *state) {
		if s, ok := st.services[id]; ok {
			out = copyService(s)
		}
	})
	return out, nil
}

func (r *serviceRepo) List(_ context.Context, limit, offset int) ([]*entity.Service, error) {
	var list []*entity.Service
	r.v.read(func(st *state) {
		for _, s := range st.services {
			list = append(list, copyService(s))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// ── ventas ───────────────────────────────────────────────────────────────────

type saleRepo struct{ v *view }

func copyLines(lines []*entity.SaleLine) []*entity.SaleLine {
	out := make([]*entity.SaleLine, 0, len(lines))
	for _, l := range lines {
		c := *l
		out = append(out, &c)
	}
	return out
}

func copySale(s entity.Sale) *entity.Sale {
	s.ProductLines = copyLines(s.ProductLines)
	s.ServiceLines = copyLines(s.ServiceLines)
	return &s
}

func (r *saleRepo) Create(_ context.Context, s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	for _, l := range s.Lines() {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.SaleID = s.ID
	}
	return r.v.write(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sales[s.ID] = *copySale(*s)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.v.read(func(st *state) {
		if s, ok := st.sales[id]; ok {
			out = copySale(s)
		}
	})
	return out, nil
}

// ── caja ─────────────────────────────────────────────────────────────────────

type cashFlowRepo struct{ v *view }

func (r *cashFlowRepo) Create(_ context.Context, e *entity.CashFlowEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return r.v.write(func(st *state) error {
		st.cash = append(st.cash, *e)
		return nil
	})
}

func (r *cashFlowRepo) GetByID(_ context.Context, id string) (*entity.CashFlowEntry, error) {
	var out *entity.CashFlowEntry
	r.v.read(func(st *state) {
		for i := range st.cash {
			if st.cash[i].ID == id {
				e := st.cash[i]
				out = &e
				return
			}
		}
	})
	return out, nil
}

func (r *cashFlowRepo) ListByReference(_ context.Context, kind, id string) ([]*entity.CashFlowEntry, error) {
	var list []*entity.CashFlowEntry
	r.v.read(func(st *state) {
		for i := range st.cash {
			if st.cash[i].ReferenceKind == kind && st.cash[i].ReferenceID == id {
				e := st.cash[i]
				list = append(list, &e)
			}
		}
	})
	return list, nil
}

func (r *cashFlowRepo) List(_ context.Context, from, to *time.Time, limit, offset int) ([]*entity.CashFlowEntry, error) {
	var list []*entity.CashFlowEntry
	r.v.read(func(st *state) {
		for i := len(st.cash) - 1; i >= 0; i-- {
			e := st.cash[i]
			if from != nil && e.Date.Before(*from) {
				continue
			}
			if to != nil && e.Date.After(*to) {
				continue
			}
			list = append(list, &e)
		}
	})
	return page(list, limit, offset), nil
}

func (r *cashFlowRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		for i := range st.cash {
			if st.cash[i].ID == id {
				st.cash = append(st.cash[:i:i], st.cash[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ── citas ────────────────────────────────────────────────────────────────────

type appointmentRepo struct{ v *view }

func (r *appointmentRepo) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	var out *entity.Appointment
	r.v.read(func(st *state) {
		if a, ok := st.appointments[id]; ok {
			out = &a
		}
	})
	return out, nil
}

func (r *appointmentRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	return r.v.write(func(st *state) error {
		a, ok := st.appointments[id]
		if !ok {
			return domain.ErrAppointmentNotFound
		}
		a.Status = status
		a.UpdatedAt = at
		st.appointments[id] = a
		return nil
	})
}
