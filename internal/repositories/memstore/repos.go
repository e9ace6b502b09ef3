package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"catalog/internal/common"
	"catalog/internal/models"
)

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.s.write(ctx, func(st *state) error {
		for _, existing := range st.categories {
			if existing.Slug == c.Slug {
				return common.Conflict("slug")
			}
		}
		st.nextCategory++
		c.ID = st.nextCategory
		c.CreatedAt = r.s.db.now()
		c.UpdatedAt = c.CreatedAt
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepo) GetByID(_ context.Context, id int64) (*models.Category, error) {
	var out models.Category
	err := r.s.read(func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return common.NotFound("category", id)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *categoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	var out *models.Category
	err := r.s.read(func(st *state) error {
		for _, c := range st.categories {
			if c.Slug == slug {
				c := c
				out = &c
				return nil
			}
		}
		return common.NotFound("category", slug)
	})
	return out, err
}

func (r *categoryRepo) Update(ctx context.Context, c *models.Category) error {
	return r.s.write(ctx, func(st *state) error {
		existing, ok := st.categories[c.ID]
		if !ok {
			return common.NotFound("category", c.ID)
		}
		for id, other := range st.categories {
			if id != c.ID && other.Slug == c.Slug {
				return common.Conflict("slug")
			}
		}
		existing.Name = c.Name
		existing.Slug = c.Slug
		existing.ParentID = c.ParentID
		existing.UpdatedAt = r.s.db.now()
		st.categories[c.ID] = existing
		c.UpdatedAt = existing.UpdatedAt
		return nil
	})
}

func (r *categoryRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.s.write(ctx, func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return common.NotFound("category", id)
		}
		c.IsActive = active
		c.UpdatedAt = r.s.db.now()
		st.categories[id] = c
		return nil
	})
}

func (r *categoryRepo) ListActive(_ context.Context) ([]*models.Category, error) {
	return r.filter(func(c models.Category) bool { return c.IsActive })
}

func (r *categoryRepo) ListActiveChildren(_ context.Context, parentID int64) ([]*models.Category, error) {
	return r.filter(func(c models.Category) bool {
		return c.IsActive && c.ParentID != nil && *c.ParentID == parentID
	})
}

func (r *categoryRepo) filter(keep func(models.Category) bool) ([]*models.Category, error) {
	out := []*models.Category{}
	err := r.s.read(func(st *state) error {
		for _, c := range st.categories {
			if keep(c) {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *models.Category) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.s.write(ctx, func(st *state) error {
		for _, existing := range st.products {
			if existing.Slug == p.Slug {
				return common.Conflict("slug")
			}
		}
		st.nextProduct++
		p.ID = st.nextProduct
		p.CreatedAt = r.s.db.now()
		p.UpdatedAt = p.CreatedAt
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*models.Product, error) {
	var out models.Product
	err := r.s.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return common.NotFound("product", id)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *productRepo) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	var out *models.Product
	err := r.s.read(func(st *state) error {
		for _, p := range st.products {
			if p.Slug == slug {
				p := p
				out = &p
				return nil
			}
		}
		return common.NotFound("product", slug)
	})
	return out, err
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	return r.s.write(ctx, func(st *state) error {
		existing, ok := st.products[p.ID]
		if !ok {
			return common.NotFound("product", p.ID)
		}
		for id, other := range st.products {
			if id != p.ID && other.Slug == p.Slug {
				return common.Conflict("slug")
			}
		}
		existing.Name = p.Name
		existing.Slug = p.Slug
		existing.Description = p.Description
		existing.Price = p.Price
		existing.Stock = p.Stock
		existing.CategoryID = p.CategoryID
		existing.UpdatedAt = r.s.db.now()
		st.products[p.ID] = existing
		p.UpdatedAt = existing.UpdatedAt
		return nil
	})
}

func (r *productRepo) mutate(ctx context.Context, id int64, fn func(p *models.Product)) error {
	return r.s.write(ctx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return common.NotFound("product", id)
		}
		fn(&p)
		st.products[id] = p
		return nil
	})
}

func (r *productRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.mutate(ctx, id, func(p *models.Product) {
		p.IsActive = active
		p.UpdatedAt = r.s.db.now()
	})
}

func (r *productRepo) SetImageURL(ctx context.Context, id int64, url string) error {
	return r.mutate(ctx, id, func(p *models.Product) {
		p.ImageURL = &url
		p.UpdatedAt = r.s.db.now()
	})
}

func (r *productRepo) UpdateRating(ctx context.Context, id int64, rating float64) error {
	return r.mutate(ctx, id, func(p *models.Product) { p.Rating = rating })
}

// LockForUpdate needs no extra locking: a transaction already owns the writer slot.
func (r *productRepo) LockForUpdate(ctx context.Context, id int64) (*models.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) ListAvailable(_ context.Context) ([]*models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.IsActive && p.Stock > 0 })
}

func (r *productRepo) ListAvailableInCategories(_ context.Context, categoryIDs []int64) ([]*models.Product, error) {
	return r.filter(func(p models.Product) bool {
		return p.IsActive && p.Stock > 0 && slices.Contains(categoryIDs, p.CategoryID)
	})
}

func (r *productRepo) ListIDs(_ context.Context) ([]int64, error) {
	products, err := r.filter(func(models.Product) bool { return true })
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (r *productRepo) filter(keep func(models.Product) bool) ([]*models.Product, error) {
	out := []*models.Product{}
	err := r.s.read(func(st *state) error {
		for _, p := range st.products {
			if keep(p) {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *models.Product) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return r.s.write(ctx, func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				return common.Conflict("username")
			}
			if existing.Email == u.Email {
				return common.Conflict("email")
			}
		}
		st.nextUser++
		u.ID = st.nextUser
		u.CreatedAt = r.s.db.now()
		st.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	var out models.User
	err := r.s.read(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return common.NotFound("user", id)
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	var out *models.User
	err := r.s.read(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return nil
			}
		}
		return common.NotFound("user", username)
	})
	return out, err
}

func (r *userRepo) UpdateRoles(ctx context.Context, id int64, isSupplier, isCustomer bool) error {
	return r.s.write(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return common.NotFound("user", id)
		}
		u.IsSupplier = isSupplier
		u.IsCustomer = isCustomer
		st.users[id] = u
		return nil
	})
}

func (r *userRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.s.write(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return common.NotFound("user", id)
		}
		u.IsActive = active
		st.users[id] = u
		return nil
	})
}

type ratingRepo struct{ s *Store }

func (r *ratingRepo) Create(ctx context.Context, rt *models.Rating) error {
	return r.s.write(ctx, func(st *state) error {
		st.nextRating++
		rt.ID = st.nextRating
		st.ratings[rt.ID] = *rt
		return nil
	})
}

func (r *ratingRepo) GetByID(_ context.Context, id int64) (*models.Rating, error) {
	var out models.Rating
	err := r.s.read(func(st *state) error {
		rt, ok := st.ratings[id]
		if !ok {
			return common.NotFound("rating", id)
		}
		out = rt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ratingRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.s.write(ctx, func(st *state) error {
		rt, ok := st.ratings[id]
		if !ok {
			return common.NotFound("rating", id)
		}
		rt.IsActive = active
		st.ratings[id] = rt
		return nil
	})
}

func (r *ratingRepo) ListActiveGrades(_ context.Context, productID int64) ([]int, error) {
	var ids []int64
	grades := []int{}
	err := r.s.read(func(st *state) error {
		for id, rt := range st.ratings {
			if rt.ProductID == productID && rt.IsActive {
				ids = append(ids, id)
			}
		}
		slices.Sort(ids)
		for _, id := range ids {
			grades = append(grades, st.ratings[id].Grade)
		}
		return nil
	})
	return grades, err
}

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(ctx context.Context, rv *models.Review) error {
	return r.s.write(ctx, func(st *state) error {
		st.nextReview++
		rv.ID = st.nextReview
		now := r.s.db.now()
		rv.CommentDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		st.reviews[rv.ID] = *rv
		return nil
	})
}

func (r *reviewRepo) GetByID(_ context.Context, id int64) (*models.Review, error) {
	var out models.Review
	err := r.s.read(func(st *state) error {
		rv, ok := st.reviews[id]
		if !ok {
			return common.NotFound("review", id)
		}
		out = rv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *reviewRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.s.write(ctx, func(st *state) error {
		rv, ok := st.reviews[id]
		if !ok {
			return common.NotFound("review", id)
		}
		rv.IsActive = active
		st.reviews[id] = rv
		return nil
	})
}

func (r *reviewRepo) ListActive(_ context.Context) ([]*models.ReviewView, error) {
	return r.views(func(rv models.Review) bool { return true })
}

func (r *reviewRepo) ListActiveByProduct(_ context.Context, productID int64) ([]*models.ReviewView, error) {
	return r.views(func(rv models.Review) bool { return rv.ProductID == productID })
}

func (r *reviewRepo) views(keep func(models.Review) bool) ([]*models.ReviewView, error) {
	out := []*models.ReviewView{}
	err := r.s.read(func(st *state) error {
		for _, rv := range st.reviews {
			if !rv.IsActive || !keep(rv) {
				continue
			}
			out = append(out, &models.ReviewView{
				Review:   rv,
				Grade:    st.ratings[rv.RatingID].Grade,
				Username: st.users[rv.UserID].Username,
			})
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *models.ReviewView) int { return cmp.Compare(a.ID, b.ID) })
	return out, err
}
