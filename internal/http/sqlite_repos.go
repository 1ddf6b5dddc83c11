package httpapi

import (
	"context"

	"github.com/citycat/adoption-engine/internal/domain"
	"github.com/citycat/adoption-engine/internal/storage"
)

// SQLiteRepos adapts the SQLite store to the server's repo interfaces.
type SQLiteRepos struct {
	Store *storage.SQLiteStore
}

func NewSQLiteRepos(store *storage.SQLiteStore) *SQLiteRepos {
	return &SQLiteRepos{Store: store}
}

func (r *SQLiteRepos) Bundle() Repos {
	return Repos{Cats: r, Applications: r, Flags: r, Affiliations: r}
}

func (r *SQLiteRepos) SaveApplication(_ context.Context, app domain.AdoptionApplication) (domain.AdoptionApplication, error) {
	return r.Store.SaveApplication(app)
}

func (r *SQLiteRepos) GetApplication(_ context.Context, id string) (domain.AdoptionApplication, bool, error) {
	if r == nil || r.Store == nil {
		return domain.AdoptionApplication{}, false, nil
	}
	return r.Store.GetApplication(id)
}

func (r *SQLiteRepos) List(_ context.Context, p ListParams) ([]domain.CatProfile, int, error) {
	if r == nil || r.Store == nil {
		return nil, 0, nil
	}
	return r.Store.ListCats(p.Limit, p.Offset, p.Status, p.MinAge)
}

func (r *SQLiteRepos) Get(_ context.Context, id string) (domain.CatProfile, bool, error) {
	if r == nil || r.Store == nil {
		return domain.CatProfile{}, false, nil
	}
	return r.Store.GetCat(id)
}

func (r *SQLiteRepos) Create(_ context.Context, cat domain.CatProfile) (domain.CatProfile, error) {
	return r.Store.CreateCat(cat)
}

func (r *SQLiteRepos) Delete(_ context.Context, id string) (bool, error) {
	return r.Store.DeleteCat(id)
}

func (r *SQLiteRepos) ListFlags(_ context.Context, role domain.UserRole) ([]domain.FeatureFlag, error) {
	if r == nil || r.Store == nil {
		return nil, nil
	}
	return r.Store.ListFlags(role)
}

func (r *SQLiteRepos) ListByEmail(_ context.Context, email string) ([]domain.Affiliation, error) {
	if r == nil || r.Store == nil {
		return nil, nil
	}
	return r.Store.ListAffiliationsByEmail(email)
}
