package service

import (
	"strings"
	"sync"

	"cardlink/internal/domain"
)

// 内存版仓库，行为与 gorm 实现对齐：查不到返回 (nil, nil)，
// 撞唯一键返回 domain.ErrDuplicateKey。

type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	updateErr error // 置非 nil 模拟更新落库失败
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return domain.ErrDuplicateKey
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(search string, offset, limit int) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if search == "" || strings.Contains(u.Email, search) {
			out = append(out, *u)
		}
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *memUserRepo) Update(u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile // by ID
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *memProfileRepo) Create(p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.profiles {
		if e.Slug == p.Slug {
			return domain.ErrDuplicateKey
		}
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *memProfileRepo) FindBySlug(slug string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) FirstByOwner(ownerID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.OwnerID == ownerID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) ListByOwner(ownerID string) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Profile
	for _, p := range r.profiles {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProfileRepo) CountByOwner(ownerID string) (int64, error) {
	ps, _ := r.ListByOwner(ownerID)
	return int64(len(ps)), nil
}

func (r *memProfileRepo) ListWithOwner(search string, offset, limit int) ([]domain.ProfileWithOwner, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ProfileWithOwner
	for _, p := range r.profiles {
		if search == "" || strings.Contains(p.Slug, search) || strings.Contains(p.BusinessName, search) {
			out = append(out, domain.ProfileWithOwner{Profile: *p})
		}
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *memProfileRepo) Update(p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *memProfileRepo) UpdateCardLimit(slug string, limit int) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Slug == slug {
			p.CardLimit = limit
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

func (r *memProfileRepo) DeleteByOwner(ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.profiles {
		if p.OwnerID == ownerID {
			delete(r.profiles, id)
		}
	}
	return nil
}

type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	failing bool // 置 true 模拟审计写失败
}

func newMemAuditRepo() *memAuditRepo { return &memAuditRepo{} }

func (r *memAuditRepo) Create(e *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return domain.ErrDuplicateKey
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memAuditRepo) List(offset, limit int) ([]domain.AuditWithAdmin, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditWithAdmin
	for _, e := range r.entries {
		out = append(out, domain.AuditWithAdmin{AuditEntry: e})
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *memAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}
