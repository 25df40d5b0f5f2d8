package memory

import (
	"context"
	"sort"
	"sync"

	domainavailability "rentwear/internal/domain/availability"
	domainbooking "rentwear/internal/domain/booking"
	domaincatalog "rentwear/internal/domain/catalog"
	domainloyalty "rentwear/internal/domain/loyalty"
)

// ProductRepository is an in-memory catalog backed by fixtures.
type ProductRepository struct {
	mu    sync.RWMutex
	items map[domaincatalog.ProductID]*domaincatalog.Product
}

// NewProductRepository builds an empty repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{items: make(map[domaincatalog.ProductID]*domaincatalog.Product)}
}

// ByID returns a product or catalog.ErrProductNotFound.
func (r *ProductRepository) ByID(ctx context.Context, id domaincatalog.ProductID) (*domaincatalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.items[id]
	if !ok {
		return nil, domaincatalog.ErrProductNotFound
	}
	return product, nil
}

// Save stores/updates a product entry.
func (r *ProductRepository) Save(ctx context.Context, product *domaincatalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[product.ID] = product
	return nil
}

// List returns all products sorted by id.
func (r *ProductRepository) List(ctx context.Context) ([]*domaincatalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domaincatalog.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CalendarRepository keeps availability calendars in memory.
type CalendarRepository struct {
	mu        sync.RWMutex
	calendars map[domaincatalog.ProductID]*domainavailability.Calendar
}

// NewCalendarRepository returns a repository initialized with empty calendars.
func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{calendars: make(map[domaincatalog.ProductID]*domainavailability.Calendar)}
}

// Calendar retrieves a product's calendar, lazily creating it.
func (r *CalendarRepository) Calendar(ctx context.Context, id domaincatalog.ProductID) (*domainavailability.Calendar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cal, ok := r.calendars[id]; ok {
		return cal, nil
	}
	cal := domainavailability.NewCalendar(id)
	r.calendars[id] = cal
	return cal, nil
}

// Save persists a calendar snapshot.
func (r *CalendarRepository) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	calendar.Version++
	r.calendars[calendar.ProductID] = calendar
	return nil
}

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
	order []domainbooking.BookingID
}

// NewBookingRepository builds an empty booking repo.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

// ByID fetches a booking.
func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return b, nil
}

// Save stores the current booking state.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		r.order = append(r.order, b.ID)
	}
	b.Version++
	r.items[b.ID] = b
	return nil
}

// ListBySession returns the session's bookings in creation order.
func (r *BookingRepository) ListBySession(ctx context.Context, sessionID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, id := range r.order {
		if b := r.items[id]; b != nil && b.SessionID == sessionID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ProfileRepository keeps loyalty profiles in memory.
type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]*domainloyalty.Profile
}

// NewProfileRepository builds an empty profile store.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: make(map[string]*domainloyalty.Profile)}
}

// BySession returns the profile or loyalty.ErrProfileNotFound.
func (r *ProfileRepository) BySession(ctx context.Context, sessionID string) (*domainloyalty.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.items[sessionID]
	if !ok {
		return nil, domainloyalty.ErrProfileNotFound
	}
	return profile, nil
}

// Save writes the profile entry.
func (r *ProfileRepository) Save(ctx context.Context, profile *domainloyalty.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[profile.SessionID] = profile
	return nil
}

var (
	_ domaincatalog.Repository      = (*ProductRepository)(nil)
	_ domainavailability.Repository = (*CalendarRepository)(nil)
	_ domainbooking.Repository      = (*BookingRepository)(nil)
	_ domainloyalty.Repository      = (*ProfileRepository)(nil)
)
