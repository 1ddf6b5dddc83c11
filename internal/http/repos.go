package httpapi

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/citycat/adoption-engine/internal/domain"
)

type ListParams struct {
	Limit  int
	Offset int
	Status domain.CatStatus
	MinAge int
}

type CatRepo interface {
	List(ctx context.Context, p ListParams) ([]domain.CatProfile, int, error)
	Get(ctx context.Context, id string) (domain.CatProfile, bool, error)
	Create(ctx context.Context, cat domain.CatProfile) (domain.CatProfile, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ApplicationRepo interface {
	SaveApplication(ctx context.Context, app domain.AdoptionApplication) (domain.AdoptionApplication, error)
	GetApplication(ctx context.Context, id string) (domain.AdoptionApplication, bool, error)
}

type FlagRepo interface {
	ListFlags(ctx context.Context, role domain.UserRole) ([]domain.FeatureFlag, error)
}

type AffiliationRepo interface {
	ListByEmail(ctx context.Context, email string) ([]domain.Affiliation, error)
}

// Repos bundles the stores the server reads from.
type Repos struct {
	Cats         CatRepo
	Applications ApplicationRepo
	Flags        FlagRepo
	Affiliations AffiliationRepo
}

// MemRepos is an in-memory implementation backed by slices, used by tests
// and the one-shot CLI commands.
type MemRepos struct {
	mu           sync.RWMutex
	cats         []domain.CatProfile
	applications []domain.AdoptionApplication
	flags        []domain.FeatureFlag
	affiliations []domain.Affiliation
}

func NewMemRepos(cats []domain.CatProfile, flags []domain.FeatureFlag, affs []domain.Affiliation) *MemRepos {
	return &MemRepos{cats: cats, flags: flags, affiliations: affs}
}

// Bundle exposes the MemRepos as a Repos value for NewServer.
func (m *MemRepos) Bundle() Repos {
	return Repos{Cats: m, Applications: m, Flags: m, Affiliations: m}
}

func (m *MemRepos) List(_ context.Context, p ListParams) ([]domain.CatProfile, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var filtered []domain.CatProfile
	for _, c := range m.cats {
		if p.Status != "" && c.Status != p.Status {
			continue
		}
		if p.MinAge > 0 && c.Age < p.MinAge {
			continue
		}
		filtered = append(filtered, c)
	}

	total := len(filtered)
	offset := p.Offset
	if offset > total {
		offset = total
	}
	end := total
	if p.Limit > 0 && offset+p.Limit < end {
		end = offset + p.Limit
	}
	return filtered[offset:end], total, nil
}

func (m *MemRepos) Get(_ context.Context, id string) (domain.CatProfile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.cats {
		if c.ID == id {
			return c, true, nil
		}
	}
	return domain.CatProfile{}, false, nil
}

func (m *MemRepos) Create(_ context.Context, cat domain.CatProfile) (domain.CatProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	m.cats = append(m.cats, cat)
	return cat, nil
}

func (m *MemRepos) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.cats {
		if c.ID == id {
			m.cats = append(m.cats[:i], m.cats[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *MemRepos) SaveApplication(_ context.Context, app domain.AdoptionApplication) (domain.AdoptionApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	m.applications = append(m.applications, app)
	return app, nil
}

func (m *MemRepos) GetApplication(_ context.Context, id string) (domain.AdoptionApplication, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.applications {
		if a.ID == id {
			return a, true, nil
		}
	}
	return domain.AdoptionApplication{}, false, nil
}

func (m *MemRepos) ListFlags(_ context.Context, role domain.UserRole) ([]domain.FeatureFlag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.FeatureFlag
	for _, f := range m.flags {
		if f.Role == role {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *MemRepos) ListByEmail(_ context.Context, email string) ([]domain.Affiliation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Affiliation
	for _, a := range m.affiliations {
		if a.UserEmail == email {
			out = append(out, a)
		}
	}
	return out, nil
}
