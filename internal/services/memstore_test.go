package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hotelapi/internal/domain"
	"hotelapi/internal/domain/models"
)

// In-memory stores for service tests. CreatedAt advances one second per insert
// so ordering by creation time is deterministic.

type memClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *memClock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now.IsZero() {
		c.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	c.now = c.now.Add(time.Second)
	return c.now
}

type memHotels struct {
	mu     sync.Mutex
	clock  memClock
	seq    int
	hotels map[string]models.Hotel
	err    error
}

func newMemHotels(hotels ...models.Hotel) *memHotels {
	m := &memHotels{hotels: map[string]models.Hotel{}}
	for _, h := range hotels {
		if h.ReservationStatus == "" {
			h.ReservationStatus = models.ReservationAvailable
		}
		m.hotels[h.ID] = h
	}
	return m
}

func (m *memHotels) Create(_ context.Context, h models.Hotel) (models.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Hotel{}, m.err
	}
	m.seq++
	h.ID = fmt.Sprintf("hotel-%d", m.seq)
	h.CreatedAt = m.clock.tick()
	h.UpdatedAt = h.CreatedAt
	m.hotels[h.ID] = h
	return h, nil
}

func (m *memHotels) GetByID(_ context.Context, id string) (models.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Hotel{}, m.err
	}
	h, ok := m.hotels[id]
	if !ok {
		return models.Hotel{}, domain.NotFoundError{Resource: "hotel"}
	}
	return h, nil
}

func (m *memHotels) List(_ context.Context, q models.HotelQuery) ([]models.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Hotel{}
	for _, h := range m.hotels {
		if h.CheapestPrice > q.MinPrice && h.CheapestPrice < q.MaxPrice {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memHotels) Update(_ context.Context, id string, upd models.HotelUpdate) (models.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hotels[id]
	if !ok {
		return models.Hotel{}, domain.NotFoundError{Resource: "hotel"}
	}
	f := upd.HotelFields
	h.Name, h.Type, h.City, h.Address, h.Description = f.Name, f.Type, f.City, f.Address, f.Description
	h.Rating, h.Rooms, h.CheapestPrice = f.Rating, f.Rooms, f.CheapestPrice
	if upd.Photos != nil {
		h.Photos = *upd.Photos
	}
	if upd.ReservationStatus != nil {
		h.ReservationStatus = *upd.ReservationStatus
	}
	m.hotels[id] = h
	return h, nil
}

func (m *memHotels) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hotels, id)
	return nil
}

func (m *memHotels) SetReservationStatus(_ context.Context, id string, status models.ReservationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.hotels[id]; ok {
		h.ReservationStatus = status
		m.hotels[id] = h
	}
	return nil
}

func (m *memHotels) Refs(_ context.Context, ids []string) (map[string]models.HotelRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]models.HotelRef{}
	for _, id := range ids {
		if h, ok := m.hotels[id]; ok {
			out[id] = models.HotelRef{ID: h.ID, Name: h.Name, Address: h.Address, Photos: h.Photos}
		}
	}
	return out, nil
}

func (m *memHotels) status(id string) models.ReservationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hotels[id].ReservationStatus
}

type memBookings struct {
	mu       sync.Mutex
	clock    memClock
	seq      int
	bookings map[string]models.Booking
	err      error
}

func newMemBookings() *memBookings {
	return &memBookings{bookings: map[string]models.Booking{}}
}

func (m *memBookings) Reserve(_ context.Context, b models.Booking) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Booking{}, m.err
	}
	if b.Status == "" {
		b.Status = models.BookingConfirmed
	}
	if b.Holds(b.CheckInDate, b.CheckOutDate) {
		for _, other := range m.bookings {
			if other.HotelID == b.HotelID && other.Room == b.Room && other.Holds(b.CheckInDate, b.CheckOutDate) {
				return models.Booking{}, domain.ErrRoomTaken
			}
		}
	}
	m.seq++
	b.ID = fmt.Sprintf("booking-%d", m.seq)
	b.CreatedAt = m.clock.tick()
	b.UpdatedAt = b.CreatedAt
	m.bookings[b.ID] = b
	return b, nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id string, status models.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[id]; ok {
		b.Status = status
		m.bookings[id] = b
	}
	return nil
}

func (m *memBookings) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memBookings) ListAll(_ context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memBookings) ListOverlapping(_ context.Context, hotelID string, from, to time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Booking{}
	for _, b := range m.bookings {
		if b.HotelID == hotelID && b.Holds(from, to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type memUsers struct {
	mu    sync.Mutex
	seq   int
	users map[string]models.User
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{users: map[string]models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return models.User{}, domain.ConflictError{Resource: "user"}
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *memUsers) GetByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (m *memUsers) Refs(_ context.Context, ids []string) (map[string]models.UserRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]models.UserRef{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = models.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return out, nil
}
