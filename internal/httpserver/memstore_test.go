package httpserver

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	sessionrepo "storefront/internal/repository/session"
)

// In-memory stores backing the router tests. They mirror the row-level
// behavior of the postgres repositories, including the checkout cart-clear.

type memProducts struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]domain.Product
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[int64]domain.Product{}}
}

func (m *memProducts) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Product
	for _, p := range m.items {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Availability != "" && p.Availability != f.Availability {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = m.seq
	p.CreatedAt = time.Now()
	m.items[p.ID] = p
	return &p, nil
}

func (m *memProducts) Update(_ context.Context, id int64, patch domain.ProductPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Availability != nil {
		p.Availability = *patch.Availability
	}
	m.items[id] = p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memProducts) Categories(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range m.items {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

type memCart struct {
	mu       sync.Mutex
	seq      int64
	lines    map[int64]domain.CartLine
	products *memProducts
}

func newMemCart(products *memProducts) *memCart {
	return &memCart{lines: map[int64]domain.CartLine{}, products: products}
}

// Upsert merges on (user, product) under one lock, mirroring the atomic
// ON CONFLICT increment the postgres repository performs.
func (m *memCart) Upsert(_ context.Context, line domain.CartLine) (*domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.lines {
		if l.UserID == line.UserID && l.ProductID == line.ProductID {
			l.Quantity += line.Quantity
			m.lines[id] = l
			return &l, nil
		}
	}
	m.seq++
	line.ID = m.seq
	line.CreatedAt = time.Now()
	m.lines[line.ID] = line
	return &line, nil
}

func (m *memCart) SetQuantity(_ context.Context, userID, lineID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[lineID]
	if !ok || l.UserID != userID {
		return domain.ErrNotFound
	}
	l.Quantity = quantity
	m.lines[lineID] = l
	return nil
}

func (m *memCart) Delete(_ context.Context, userID, lineID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.lines[lineID]; ok && l.UserID == userID {
		delete(m.lines, lineID)
	}
	return nil
}

func (m *memCart) DeleteByUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.lines {
		if l.UserID == userID {
			delete(m.lines, id)
		}
	}
	return nil
}

func (m *memCart) ListByUser(ctx context.Context, userID int64) ([]domain.CartView, error) {
	m.mu.Lock()
	var lines []domain.CartLine
	for _, l := range m.lines {
		if l.UserID == userID {
			lines = append(lines, l)
		}
	}
	m.mu.Unlock()
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })

	var out []domain.CartView
	for _, l := range lines {
		p, err := m.products.GetByID(ctx, l.ProductID)
		if err != nil {
			continue
		}
		out = append(out, domain.CartView{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Color:     p.Color,
			Quantity:  l.Quantity,
			Size:      l.Size,
		})
	}
	return out, nil
}

type memOrders struct {
	mu     sync.Mutex
	seq    int64
	orders map[int64]domain.Order
	carts  *memCart
}

func newMemOrders(carts *memCart) *memOrders {
	return &memOrders{orders: map[int64]domain.Order{}, carts: carts}
}

// Create mimics the checkout transaction: the order lands together with the
// owner's cart being emptied.
func (m *memOrders) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	m.seq++
	out := *o
	out.ID = m.seq
	out.CreatedAt = time.Now()
	out.Items = make([]domain.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.ID = int64(i + 1)
		it.OrderID = out.ID
		out.Items[i] = it
	}
	m.orders[out.ID] = out
	m.mu.Unlock()

	if err := m.carts.DeleteByUser(ctx, out.UserID); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *memOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (m *memOrders) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	m.orders[id] = o
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[int64]domain.User{}}
}

func (m *memUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.TaxID == u.TaxID {
			return nil, domain.ErrAlreadyExists
		}
	}
	m.seq++
	u.ID = m.seq
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id int64, p domain.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Name = p.Name
	u.Phone = p.Phone
	u.PostalCode = p.PostalCode
	u.Street = p.Street
	u.Neighborhood = p.Neighborhood
	u.City = p.City
	u.State = p.State
	m.users[id] = u
	return nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]sessionrepo.Session
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: map[string]sessionrepo.Session{}}
}

func (m *memSessions) Create(_ context.Context, s sessionrepo.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.CreatedAt = time.Now()
	m.sessions[s.Token] = s
	return nil
}

func (m *memSessions) Get(_ context.Context, token string) (*sessionrepo.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *memSessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, token)
	return nil
}

func (m *memSessions) DeleteByUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, token)
		}
	}
	return nil
}
