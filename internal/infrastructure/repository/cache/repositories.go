package cache

import (
	"context"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
	"github.com/riskibarqy/tennispal/internal/domain/user"
	basecache "github.com/riskibarqy/tennispal/internal/platform/cache"
)

// UserRepository caches reads of the player directory. Profile rows are
// small and read on nearly every request, so a short TTL keeps the
// hot paths off the database without risking stale ratings for long.
type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) Create(ctx context.Context, item user.User) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "user:list")
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	key := "user:id:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return cachedUser{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.User{}, false, err
	}

	cached, _ := v.(cachedUser)
	return cached.value, cached.exists, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	key := "user:email:" + email
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return cachedUser{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.User{}, false, err
	}

	cached, _ := v.(cachedUser)
	return cached.value, cached.exists, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	v, err := r.cache.GetOrLoad(ctx, "user:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]user.User(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]user.User)
	return append([]user.User(nil), items...), nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "user:id:"+item.ID)
	r.cache.Delete(ctx, "user:email:"+item.Email)
	r.cache.Delete(ctx, "user:list")
	return nil
}

type cachedUser struct {
	value  user.User
	exists bool
}

// AvailabilityRepository caches the weekly slot lists the matchmaking
// scorer reads for every candidate.
type AvailabilityRepository struct {
	next  availability.Repository
	cache *basecache.Store
}

func NewAvailabilityRepository(next availability.Repository, cache *basecache.Store) *AvailabilityRepository {
	return &AvailabilityRepository{next: next, cache: cache}
}

func (r *AvailabilityRepository) Create(ctx context.Context, item availability.Slot) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, "availability:user:"+item.UserID)
	r.cache.Delete(ctx, "availability:all")
	return nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, slotID string) (availability.Slot, bool, error) {
	return r.next.GetByID(ctx, slotID)
}

func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID string) ([]availability.Slot, error) {
	key := "availability:user:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return append([]availability.Slot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]availability.Slot)
	return append([]availability.Slot(nil), items...), nil
}

func (r *AvailabilityRepository) ListAll(ctx context.Context) ([]availability.Slot, error) {
	v, err := r.cache.GetOrLoad(ctx, "availability:all", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]availability.Slot(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]availability.Slot)
	return append([]availability.Slot(nil), items...), nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, slotID string) error {
	if err := r.next.Delete(ctx, slotID); err != nil {
		return err
	}
	// The slot owner is not part of the delete call, so the per-user
	// entries are cleared wholesale.
	r.cache.DeletePrefix(ctx, "availability:")
	return nil
}
