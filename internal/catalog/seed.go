package catalog

import (
	"context"

	"github.com/pkg/errors"
)

// EnsureSeeded populates an empty catalog with the default package set.
// When the catalog already has at least one row it performs zero writes.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	count, err := s.repo.CountPackages(ctx)
	if err != nil {
		return errors.Wrap(err, "check catalog")
	}
	if count >= 1 {
		s.log.WithField("packages", count).Debug("catalog already seeded")
		return nil
	}

	defaults := DefaultPackages()
	if err := s.repo.InsertPackages(ctx, defaults); err != nil {
		return errors.Wrap(err, "seed catalog")
	}
	s.log.WithField("packages", len(defaults)).Info("seeded catalog with default packages")
	return nil
}

// ForceReseed deletes every package and inserts exactly the default set,
// regardless of prior state. Destructive; exposed only behind the admin
// debug surface and the reseed CLI command.
func (s *Service) ForceReseed(ctx context.Context) (int, error) {
	if err := s.repo.DeleteAllPackages(ctx); err != nil {
		return 0, errors.Wrap(err, "clear catalog")
	}

	defaults := DefaultPackages()
	if err := s.repo.InsertPackages(ctx, defaults); err != nil {
		return 0, errors.Wrap(err, "reseed catalog")
	}
	s.log.WithField("packages", len(defaults)).Info("force-reseeded catalog")
	return len(defaults), nil
}
