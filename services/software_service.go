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
	"fmt"
	"strings"

	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/utils"
)

type softwareService struct {
	softwareRepository shared.SoftwareRepository
}

var _ shared.SoftwareService = (*softwareService)(nil)

func NewSoftwareService(softwareRepository shared.SoftwareRepository) *softwareService {
	return &softwareService{
		softwareRepository: softwareRepository,
	}
}

func (s *softwareService) List() ([]models.Software, error) {
	software, err := s.softwareRepository.ListOrderedByName()
	if err != nil {
		return nil, shared.NewStorageError("could not list software", err)
	}
	return software, nil
}

func (s *softwareService) Resolve(ids []int64) ([]models.Software, error) {
	if len(ids) == 0 {
		return []models.Software{}, nil
	}

	found, err := s.softwareRepository.List(ids)
	if err != nil {
		return nil, shared.NewStorageError("could not load software", err)
	}

	byID := make(map[int64]models.Software, len(found))
	for _, sw := range found {
		byID[sw.ID] = sw
	}

	res := make([]models.Software, 0, len(ids))
	var unknown []string
	for _, id := range ids {
		sw, ok := byID[id]
		if !ok {
			unknown = append(unknown, fmt.Sprint(id))
			continue
		}
		res = append(res, sw)
	}

	if len(unknown) > 0 {
		unknown = utils.UniqBy(unknown, func(s string) string { return s })
		return nil, shared.NewValidationError("softwareIds", "unknown software: "+strings.Join(unknown, ", "))
	}
	return res, nil
}
