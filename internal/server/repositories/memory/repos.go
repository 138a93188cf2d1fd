package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/dmitrijs2005/lifelog/internal/server/models"
	"github.com/google/uuid"
)

type userRepo struct{ s *store }

func (r *userRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrorConflict
		}
	}
	c := *u
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = r.s.tick()
	c.UpdatedAt = c.CreatedAt
	r.s.users[c.ID] = &c

	out := c
	return &out, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p := &models.UserProfile{ID: u.ID, Email: u.Email, UserName: u.UserName}
	if a, ok := r.s.avatars[userID]; ok {
		url := a.ImageURL
		p.AvatarURL = &url
	}
	return p, nil
}

func (r *userRepo) UpdateUserName(_ context.Context, userID, userName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.UserName = userName
	u.UpdatedAt = r.s.tick()
	return nil
}

type avatarRepo struct{ s *store }

func (r *avatarRepo) Get(_ context.Context, userID string) (*models.Avatar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.avatars[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *a
	return &out, nil
}

func (r *avatarRepo) Upsert(_ context.Context, userID, imageURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a, ok := r.s.avatars[userID]; ok {
		a.ImageURL = imageURL
		a.UpdatedAt = r.s.tick()
		return nil
	}
	t := r.s.tick()
	r.s.avatars[userID] = &models.Avatar{
		ID: uuid.NewString(), UserID: userID, ImageURL: imageURL, CreatedAt: t, UpdatedAt: t,
	}
	return nil
}

type categoryRepo struct{ s *store }

func (r *categoryRepo) List(_ context.Context, userID string) ([]*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Category, 0)
	for _, c := range r.s.categories {
		if c.UserID == userID {
			out := *c
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *categoryRepo) Get(_ context.Context, id, userID string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	out := *c
	return &out, nil
}

func (r *categoryRepo) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *c
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = r.s.tick()
	stored.UpdatedAt = stored.CreatedAt
	r.s.categories[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *categoryRepo) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.categories[c.ID]
	if !ok || stored.UserID != c.UserID {
		return nil, common.ErrorNotFound
	}
	stored.Name, stored.Icon, stored.Color = c.Name, c.Icon, c.Color
	stored.UpdatedAt = r.s.tick()

	out := *stored
	return &out, nil
}

// Delete removes the category and nulls category_id on every record that
// referenced it, soft-deleted ones included.
func (r *categoryRepo) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok || c.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.categories, id)
	for _, rec := range r.s.records {
		if rec.CategoryID != nil && *rec.CategoryID == id {
			rec.CategoryID = nil
		}
	}
	return nil
}

func (r *categoryRepo) Count(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, c := range r.s.categories {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

type recordRepo struct{ s *store }

func (r *recordRepo) visible(id, userID string) (*models.Record, bool) {
	rec, ok := r.s.records[id]
	if !ok || rec.UserID != userID || rec.Invalidated {
		return nil, false
	}
	return rec, true
}

func (r *recordRepo) List(_ context.Context, userID string, filter models.RecordFilter) ([]*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Record, 0)
	for _, rec := range r.s.records {
		if rec.UserID != userID || rec.Invalidated {
			continue
		}
		if filter.CategoryID != nil && (rec.CategoryID == nil || *rec.CategoryID != *filter.CategoryID) {
			continue
		}
		out := copyRecord(rec)
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *recordRepo) Get(_ context.Context, id, userID string) (*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.visible(id, userID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := copyRecord(rec)
	return &out, nil
}

func (r *recordRepo) Create(_ context.Context, rec *models.Record) (*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := copyRecord(rec)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Invalidated = false
	stored.DeletedAt = nil
	stored.CreatedAt = r.s.tick()
	r.s.records[stored.ID] = &stored

	rec.ID = stored.ID
	rec.CreatedAt = stored.CreatedAt
	return rec, nil
}

func (r *recordRepo) Update(_ context.Context, rec *models.Record) (*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.visible(rec.ID, rec.UserID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	in := copyRecord(rec)
	stored.Title = in.Title
	stored.Description = in.Description
	stored.DateLogged = in.DateLogged
	stored.CategoryID = in.CategoryID
	if in.ImageURL != nil {
		stored.ImageURL = in.ImageURL
	}

	out := copyRecord(stored)
	return &out, nil
}

func (r *recordRepo) SoftDelete(_ context.Context, id, userID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.visible(id, userID)
	if !ok {
		return common.ErrorNotFound
	}
	rec.Invalidated = true
	rec.DeletedAt = &at
	return nil
}

func (r *recordRepo) Stats(_ context.Context, userID string, monthStart, weekStart time.Time) (*models.RecordStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var s models.RecordStats
	for _, rec := range r.s.records {
		if rec.UserID != userID || rec.Invalidated {
			continue
		}
		s.Total++
		if !rec.DateLogged.Before(monthStart) {
			s.ThisMonth++
		}
		if !rec.DateLogged.Before(weekStart) {
			s.LastSevenDays++
		}
	}
	return &s, nil
}
