package application

import (
	"sort"
	"strconv"
	"sync"

	"github.com/astrocat-app/astrocat/internal/domain/entity"
	repo "github.com/astrocat-app/astrocat/internal/domain/repository"
)

// In-memory repositories for service tests. They honor the same uniqueness
// rules the database enforces with unique indexes.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) nextID() string {
	r.seq++
	return "user-" + strconv.Itoa(r.seq)
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email || e.Username == u.Username {
			return repo.ErrConflict
		}
	}
	u.ID = r.nextID()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) List() ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for _, e := range r.users {
		if e.ID != u.ID && e.Username == u.Username {
			return repo.ErrConflict
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memNewsRepo struct {
	mu    sync.Mutex
	seq   int
	posts map[string]*entity.News
	order []string
}

func newMemNewsRepo() *memNewsRepo {
	return &memNewsRepo{posts: make(map[string]*entity.News)}
}

func (r *memNewsRepo) Create(n *entity.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	n.ID = "news-" + strconv.Itoa(r.seq)
	cp := *n
	r.posts[n.ID] = &cp
	r.order = append(r.order, n.ID)
	return nil
}

func (r *memNewsRepo) GetByID(id string) (*entity.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.posts[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memNewsRepo) ListVisible(viewerID string) ([]*entity.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.News, 0, len(r.order))
	// newest first
	for i := len(r.order) - 1; i >= 0; i-- {
		n := r.posts[r.order[i]]
		if n == nil {
			continue
		}
		if n.VisibleTo(viewerID) {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memNewsRepo) Update(n *entity.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[n.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *n
	r.posts[n.ID] = &cp
	return nil
}

func (r *memNewsRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

type memSystemRepo struct {
	mu      sync.Mutex
	seq     int
	systems map[string]*entity.SpaceSystem
	objects *memObjectRepo // for cascading deletes
}

func newMemSystemRepo(objects *memObjectRepo) *memSystemRepo {
	return &memSystemRepo{systems: make(map[string]*entity.SpaceSystem), objects: objects}
}

func (r *memSystemRepo) Create(s *entity.SpaceSystem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.systems {
		if e.Name == s.Name {
			return repo.ErrConflict
		}
	}
	r.seq++
	s.ID = "sys-" + strconv.Itoa(r.seq)
	cp := *s
	r.systems[s.ID] = &cp
	return nil
}

func (r *memSystemRepo) GetByID(id string) (*entity.SpaceSystem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.systems[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memSystemRepo) GetByName(name string) (*entity.SpaceSystem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.systems {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memSystemRepo) List() ([]*entity.SpaceSystem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.SpaceSystem, 0, len(r.systems))
	for _, s := range r.systems {
		if s.IsSolar() {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memSystemRepo) Update(s *entity.SpaceSystem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.systems[s.ID]; !ok {
		return repo.ErrNotFound
	}
	for _, e := range r.systems {
		if e.ID != s.ID && e.Name == s.Name {
			return repo.ErrConflict
		}
	}
	cp := *s
	r.systems[s.ID] = &cp
	return nil
}

func (r *memSystemRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.systems[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.systems, id)
	if r.objects != nil {
		r.objects.deleteBySystem(id)
	}
	return nil
}

type memObjectRepo struct {
	mu      sync.Mutex
	seq     int
	objects map[string]*entity.SpaceObject
}

func newMemObjectRepo() *memObjectRepo {
	return &memObjectRepo{objects: make(map[string]*entity.SpaceObject)}
}

func (r *memObjectRepo) Create(o *entity.SpaceObject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.objects {
		if e.Name == o.Name {
			return repo.ErrConflict
		}
	}
	r.seq++
	o.ID = "obj-" + strconv.Itoa(r.seq)
	cp := *o
	r.objects[o.ID] = &cp
	return nil
}

func (r *memObjectRepo) GetByID(id string) (*entity.SpaceObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.objects[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (r *memObjectRepo) GetByName(name string) (*entity.SpaceObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.objects {
		if o.Name == name {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memObjectRepo) List() ([]*entity.SpaceObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.SpaceObject, 0, len(r.objects))
	for _, o := range r.objects {
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memObjectRepo) ListBySystem(systemID string) ([]*entity.SpaceObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.SpaceObject, 0)
	for _, o := range r.objects {
		if o.SystemID == systemID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memObjectRepo) Update(o *entity.SpaceObject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.objects[o.ID]; !ok {
		return repo.ErrNotFound
	}
	for _, e := range r.objects {
		if e.ID != o.ID && e.Name == o.Name {
			return repo.ErrConflict
		}
	}
	cp := *o
	r.objects[o.ID] = &cp
	return nil
}

func (r *memObjectRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.objects[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.objects, id)
	return nil
}

func (r *memObjectRepo) deleteBySystem(systemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.objects {
		if o.SystemID == systemID {
			delete(r.objects, id)
		}
	}
}

var _ repo.UserRepository = (*memUserRepo)(nil)
var _ repo.NewsRepository = (*memNewsRepo)(nil)
var _ repo.SpaceSystemRepository = (*memSystemRepo)(nil)
var _ repo.SpaceObjectRepository = (*memObjectRepo)(nil)
