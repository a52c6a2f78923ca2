package catalog

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostbay/boostbay-golang/internal/models"
)

type fakeRepository struct {
	packages []models.Package

	pricingFnInstalled bool
	failList           error

	inserts int
	deletes int
}

func (f *fakeRepository) filtered(serviceType string) []models.Package {
	out := make([]models.Package, 0, len(f.packages))
	for _, p := range f.packages {
		if serviceType == "" || p.ServiceType == serviceType {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeRepository) PackagesWithPrices(_ context.Context, serviceType string) ([]models.Package, error) {
	if !f.pricingFnInstalled {
		return nil, ErrPricingFunctionMissing
	}
	if f.failList != nil {
		return nil, f.failList
	}
	out := f.filtered(serviceType)
	for i := range out {
		out[i].EffectivePrice = EffectivePrice(out[i])
	}
	return out, nil
}

func (f *fakeRepository) ListPackages(_ context.Context, serviceType string) ([]models.Package, error) {
	if f.failList != nil {
		return nil, f.failList
	}
	return f.filtered(serviceType), nil
}

func (f *fakeRepository) CountPackages(_ context.Context) (int, error) {
	if f.failList != nil {
		return 0, f.failList
	}
	return len(f.packages), nil
}

func (f *fakeRepository) InsertPackages(_ context.Context, pkgs []models.Package) error {
	f.inserts++
	f.packages = append(f.packages, pkgs...)
	return nil
}

func (f *fakeRepository) DeleteAllPackages(_ context.Context) error {
	f.deletes++
	f.packages = nil
	return nil
}

var _ Repository = &fakeRepository{}

func newService(repo *fakeRepository) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(repo, logrus.NewEntry(log))
}

func TestEffectivePrice(t *testing.T) {
	t.Run("discounted price wins when sane", func(t *testing.T) {
		p := models.Package{Price: 20, DiscountedPrice: ptr(15), DiscountPercentage: 50}
		assert.InDelta(t, 15.0, EffectivePrice(p), 1e-9)
	})

	t.Run("discounted price above price is ignored", func(t *testing.T) {
		p := models.Package{Price: 20, DiscountedPrice: ptr(25)}
		assert.InDelta(t, 20.0, EffectivePrice(p), 1e-9)
	})

	t.Run("percentage fallback", func(t *testing.T) {
		p := models.Package{Price: 20, DiscountPercentage: 25}
		assert.InDelta(t, 15.0, EffectivePrice(p), 1e-9)
	})

	t.Run("percentage fallback rounds to cents", func(t *testing.T) {
		p := models.Package{Price: 9.99, DiscountPercentage: 10}
		assert.InDelta(t, 8.99, EffectivePrice(p), 1e-9)
	})

	t.Run("plain price", func(t *testing.T) {
		p := models.Package{Price: 12.5}
		assert.InDelta(t, 12.5, EffectivePrice(p), 1e-9)
	})
}

func TestListPackagesUsesPricingFunction(t *testing.T) {
	repo := &fakeRepository{
		pricingFnInstalled: true,
		packages: []models.Package{
			{ID: "a", ServiceType: "youtube", Price: 10, DiscountPercentage: 10, IsActive: true},
		},
	}
	svc := newService(repo)

	pkgs, err := svc.ListPackages(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.InDelta(t, 9.0, pkgs[0].EffectivePrice, 1e-9)
}

func TestListPackagesFallsBackWhenFunctionMissing(t *testing.T) {
	repo := &fakeRepository{
		pricingFnInstalled: false,
		packages: []models.Package{
			{ID: "a", ServiceType: "youtube", Price: 20, DiscountedPrice: ptr(15), IsActive: true},
		},
	}
	svc := newService(repo)

	pkgs, err := svc.ListPackages(context.Background(), "youtube")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.InDelta(t, 15.0, pkgs[0].EffectivePrice, 1e-9, "manual calculation applied")
}

func TestListPackagesDefaultsOnEmptyCatalog(t *testing.T) {
	svc := newService(&fakeRepository{pricingFnInstalled: true})

	pkgs, err := svc.ListPackages(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, pkgs, len(DefaultPackages()))
}

func TestListPackagesDefaultsOnReadFailure(t *testing.T) {
	repo := &fakeRepository{pricingFnInstalled: true, failList: errors.New("connection refused")}
	svc := newService(repo)

	pkgs, err := svc.ListPackages(context.Background(), "instagram")
	require.NoError(t, err, "read failures degrade to defaults, not errors")
	require.NotEmpty(t, pkgs)
	for _, p := range pkgs {
		assert.Equal(t, "instagram", p.ServiceType)
	}
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	repo := &fakeRepository{}
	svc := newService(repo)

	require.NoError(t, svc.EnsureSeeded(context.Background()))
	assert.Equal(t, 1, repo.inserts)
	assert.Len(t, repo.packages, len(DefaultPackages()))

	// Second run: catalog non-empty, zero writes.
	require.NoError(t, svc.EnsureSeeded(context.Background()))
	assert.Equal(t, 1, repo.inserts)
}

func TestEnsureSeededSkipsNonEmptyCatalog(t *testing.T) {
	repo := &fakeRepository{packages: []models.Package{{ID: "existing"}}}
	svc := newService(repo)

	require.NoError(t, svc.EnsureSeeded(context.Background()))
	assert.Zero(t, repo.inserts)
	assert.Len(t, repo.packages, 1)
}

func TestForceReseedReplacesEverything(t *testing.T) {
	repo := &fakeRepository{packages: []models.Package{{ID: "stale-1"}, {ID: "stale-2"}}}
	svc := newService(repo)

	n, err := svc.ForceReseed(context.Background())
	require.NoError(t, err)

	defaults := DefaultPackages()
	assert.Equal(t, len(defaults), n)
	assert.Equal(t, 1, repo.deletes)
	require.Len(t, repo.packages, len(defaults))
	assert.Equal(t, defaults[0].ID, repo.packages[0].ID)

	// Reseeding again yields exactly the same set.
	n, err = svc.ForceReseed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(defaults), n)
	assert.Len(t, repo.packages, len(defaults))
}

func TestDefaultPackagesCarryEffectivePrices(t *testing.T) {
	for _, p := range DefaultPackages() {
		assert.True(t, p.IsActive, p.ID)
		assert.Greater(t, p.Price, 0.0, p.ID)
		assert.Greater(t, p.EffectivePrice, 0.0, p.ID)
		assert.LessOrEqual(t, p.EffectivePrice, p.Price, p.ID)
	}
}
