// Package memory implementa los puertos de persistencia en memoria de proceso.
// Las transacciones se serializan: Run trabaja sobre una copia del estado y la publica
// solo si fn termina sin error, de modo que un fallo no deja escrituras parciales.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/clinica-vet-api/internal/domain/entity"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*Store)(nil)

type state struct {
	products     map[string]entity.Product
	movements    []entity.InventoryMovement
	services     map[string]entity.Service
	sales        map[string]entity.Sale
	cash         []entity.CashFlowEntry
	appointments map[string]entity.Appointment
}

func newState() *state {
	return &state{
		products:     make(map[string]entity.Product),
		services:     make(map[string]entity.Service),
		sales:        make(map[string]entity.Sale),
		appointments: make(map[string]entity.Appointment),
	}
}

func (st *state) clone() *state {
	c := &state{
		products:     make(map[string]entity.Product, len(st.products)),
		movements:    append([]entity.InventoryMovement(nil), st.movements...),
		services:     make(map[string]entity.Service, len(st.services)),
		sales:        make(map[string]entity.Sale, len(st.sales)),
		cash:         append([]entity.CashFlowEntry(nil), st.cash...),
		appointments: make(map[string]entity.Appointment, len(st.appointments)),
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.services {
		c.services[k] = v
	}
	for k, v := range st.sales {
		c.sales[k] = v
	}
	for k, v := range st.appointments {
		c.appointments[k] = v
	}
	return c
}

// Store almacenamiento en memoria. El valor cero no es usable; usar New.
type Store struct {
	txMu sync.Mutex   // serializa escritores (transacciones y escrituras sueltas)
	mu   sync.RWMutex // protege st
	st   *state
}

// New construye un almacenamiento vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia privada del estado y la publica si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(newView(s, work).repos()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// Repos devuelve repositorios fuera de transacción (lecturas y altas sueltas).
func (s *Store) Repos() repository.TxRepos {
	return newView(s, nil).repos()
}

// AddAppointment registra una cita; la agenda es un colaborador externo y aquí solo se siembra.
func (s *Store) AddAppointment(a entity.Appointment) {
	_ = newView(s, nil).write(func(st *state) error {
		st.appointments[a.ID] = a
		return nil
	})
}

// view resuelve sobre qué estado opera un repositorio: la copia de una tx o el estado publicado.
type view struct {
	store *Store
	tx    *state
}

func newView(s *Store, tx *state) *view {
	return &view{store: s, tx: tx}
}

func (v *view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	fn(v.store.st)
}

func (v *view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.txMu.Lock()
	defer v.store.txMu.Unlock()
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func (v *view) repos() repository.TxRepos {
	return repository.TxRepos{
		Products:     &productRepo{v: v},
		Movements:    &movementRepo{v: v},
		Services:     &serviceRepo{v: v},
		Sales:        &saleRepo{v: v},
		CashFlow:     &cashFlowRepo{v: v},
		Appointments: &appointmentRepo{v: v},
	}
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
