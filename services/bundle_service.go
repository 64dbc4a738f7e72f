// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/dtos"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const maxBundleNameLength = 255

type bundleService struct {
	bundleRepository shared.BundleRepository
	softwareService  shared.SoftwareService
	now              func() time.Time
}

var _ shared.BundleService = (*bundleService)(nil)

func NewBundleService(bundleRepository shared.BundleRepository, softwareService shared.SoftwareService) *bundleService {
	return &bundleService{
		bundleRepository: bundleRepository,
		softwareService:  softwareService,
		now:              time.Now,
	}
}

func normalizeBundleName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", shared.NewValidationError("name", "must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxBundleNameLength {
		return "", shared.NewValidationError("name", "must not be longer than 255 characters")
	}
	return trimmed, nil
}

// storageError keeps typed domain errors and wraps everything else.
func storageError(message string, err error) error {
	if shared.IsValidation(err) || shared.IsNotFound(err) || shared.IsAuthorization(err) || shared.IsStorage(err) {
		return err
	}
	return shared.NewStorageError(message, err)
}

func (s *bundleService) ListBundles(ownerID string) ([]models.Bundle, error) {
	bundles, err := s.bundleRepository.ListByOwner(ownerID)
	if err != nil {
		return nil, shared.NewStorageError("could not list bundles", err)
	}
	return bundles, nil
}

func (s *bundleService) CreateBundle(ownerID string, req dtos.BundleCreateRequest) (models.Bundle, error) {
	if err := shared.V.Struct(req); err != nil {
		return models.Bundle{}, shared.ValidationErrorFromValidator(err)
	}
	name, err := normalizeBundleName(req.Name)
	if err != nil {
		return models.Bundle{}, err
	}
	// unknown software ids are rejected before anything is written
	if _, err := s.softwareService.Resolve(req.SoftwareIDs); err != nil {
		return models.Bundle{}, err
	}

	bundle := models.Bundle{
		OwnerID:   ownerID,
		Name:      name,
		IsDefault: req.IsDefault,
	}

	err = s.bundleRepository.Transaction(func(tx shared.DB) error {
		if req.IsDefault {
			if err := s.bundleRepository.LockOwner(tx, ownerID); err != nil {
				return errors.Wrap(err, "could not lock owner")
			}
			// the previous default has to go before the insert, the partial unique index would reject it otherwise
			if err := s.bundleRepository.ClearDefaults(tx, ownerID, uuid.Nil); err != nil {
				return errors.Wrap(err, "could not clear default bundles")
			}
		}
		if err := s.bundleRepository.Create(tx, &bundle); err != nil {
			return errors.Wrap(err, "could not insert bundle")
		}
		return s.bundleRepository.ReplaceItems(tx, bundle.ID, req.SoftwareIDs)
	})
	if err != nil {
		return models.Bundle{}, storageError("could not create bundle", err)
	}

	return s.read(bundle.ID)
}

func (s *bundleService) read(id uuid.UUID) (models.Bundle, error) {
	bundle, err := s.bundleRepository.ReadWithSoftware(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bundle{}, shared.NewNotFoundError("bundle not found", err)
		}
		return models.Bundle{}, shared.NewStorageError("could not read bundle", err)
	}
	return bundle, nil
}

func (s *bundleService) readOwned(ownerID string, id uuid.UUID) (models.Bundle, error) {
	bundle, err := s.read(id)
	if err != nil {
		return models.Bundle{}, err
	}
	if bundle.OwnerID != ownerID {
		return models.Bundle{}, shared.NewAuthorizationError("bundle belongs to another owner")
	}
	return bundle, nil
}

func (s *bundleService) GetBundle(ownerID string, id uuid.UUID) (models.Bundle, error) {
	return s.readOwned(ownerID, id)
}

func (s *bundleService) UpdateBundle(ownerID string, id uuid.UUID, req dtos.BundlePatchRequest) (models.Bundle, error) {
	if err := shared.V.Struct(req); err != nil {
		return models.Bundle{}, shared.ValidationErrorFromValidator(err)
	}
	if _, err := s.readOwned(ownerID, id); err != nil {
		return models.Bundle{}, err
	}

	fields := map[string]any{
		"updated_at": s.now(),
	}
	if req.Name != nil {
		name, err := normalizeBundleName(*req.Name)
		if err != nil {
			return models.Bundle{}, err
		}
		fields["name"] = name
	}
	if req.SoftwareIDs != nil {
		// omitempty lets an explicit empty list through
		if len(*req.SoftwareIDs) == 0 {
			return models.Bundle{}, shared.NewValidationError("softwareIds", "must not be empty")
		}
		if _, err := s.softwareService.Resolve(*req.SoftwareIDs); err != nil {
			return models.Bundle{}, err
		}
	}
	setDefault := req.IsDefault != nil && *req.IsDefault
	if req.IsDefault != nil {
		fields["is_default"] = *req.IsDefault
	}

	err := s.bundleRepository.Transaction(func(tx shared.DB) error {
		if setDefault {
			if err := s.bundleRepository.LockOwner(tx, ownerID); err != nil {
				return errors.Wrap(err, "could not lock owner")
			}
			if err := s.bundleRepository.ClearDefaults(tx, ownerID, id); err != nil {
				return errors.Wrap(err, "could not clear default bundles")
			}
		}
		if err := s.bundleRepository.UpdateFields(tx, id, fields); err != nil {
			return errors.Wrap(err, "could not update bundle")
		}
		if req.SoftwareIDs != nil {
			return s.bundleRepository.ReplaceItems(tx, id, *req.SoftwareIDs)
		}
		return nil
	})
	if err != nil {
		return models.Bundle{}, storageError("could not update bundle", err)
	}

	return s.read(id)
}

func (s *bundleService) DeleteBundle(ownerID string, id uuid.UUID) error {
	if _, err := s.readOwned(ownerID, id); err != nil {
		return err
	}
	err := s.bundleRepository.Transaction(func(tx shared.DB) error {
		return s.bundleRepository.Delete(tx, id)
	})
	if err != nil {
		return shared.NewStorageError("could not delete bundle", err)
	}
	return nil
}
