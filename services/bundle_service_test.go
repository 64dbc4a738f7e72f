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
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sdm/database/models"
	"github.com/l3montree-dev/sdm/database/repositories"
	"github.com/l3montree-dev/sdm/dtos"
	"github.com/l3montree-dev/sdm/integrationtestutil"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/l3montree-dev/sdm/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBundleTestService(t *testing.T) (*gorm.DB, *bundleService, []models.Software) {
	t.Helper()
	db := integrationtestutil.InitSQLiteDB(t)
	software := integrationtestutil.CreateSoftware(t, db, "firefox", "vlc", "7zip", "gimp")
	svc := NewBundleService(
		repositories.NewBundleRepository(db),
		NewSoftwareService(repositories.NewSoftwareRepository(db)),
	)
	return db, svc, software
}

func ids(software ...models.Software) []int64 {
	return utils.Map(software, func(s models.Software) int64 { return s.ID })
}

func defaultBundles(t *testing.T, db *gorm.DB, ownerID string) []models.Bundle {
	t.Helper()
	var bundles []models.Bundle
	require.NoError(t, db.Where("owner_id = ? AND is_default = ?", ownerID, true).Find(&bundles).Error)
	return bundles
}

func TestCreateBundle(t *testing.T) {
	t.Run("should persist the items in the given order", func(t *testing.T) {
		_, svc, sw := newBundleTestService(t)

		bundle, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{
			Name:        "  Dev Setup ",
			SoftwareIDs: ids(sw[2], sw[0], sw[1]),
		})
		require.NoError(t, err)

		assert.Equal(t, "Dev Setup", bundle.Name)
		assert.Equal(t, "u1", bundle.OwnerID)
		assert.False(t, bundle.IsDefault)
		assert.Equal(t, ids(sw[2], sw[0], sw[1]), bundle.SoftwareIDs())
		for i, item := range bundle.OrderedItems() {
			assert.Equal(t, i+1, item.SortOrder)
		}
		assert.Equal(t, []string{"7zip", "firefox", "vlc"}, utils.Map(bundle.OrderedSoftware(), func(s models.Software) string { return s.Name }))
	})

	t.Run("should reject invalid input without writing anything", func(t *testing.T) {
		db, svc, sw := newBundleTestService(t)

		cases := map[string]dtos.BundleCreateRequest{
			"blank name":     {Name: "   ", SoftwareIDs: ids(sw[0])},
			"missing name":   {SoftwareIDs: ids(sw[0])},
			"too long name":  {Name: strings.Repeat("a", 256), SoftwareIDs: ids(sw[0])},
			"no software":    {Name: "x"},
			"duplicate ids":  {Name: "x", SoftwareIDs: ids(sw[0], sw[0])},
			"unknown id":     {Name: "x", SoftwareIDs: []int64{sw[0].ID, 999}},
			"non positive":   {Name: "x", SoftwareIDs: []int64{0}},
			"unknown + dflt": {Name: "x", SoftwareIDs: []int64{999}, IsDefault: true},
		}
		for name, req := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := svc.CreateBundle("u1", req)
				assert.True(t, shared.IsValidation(err), "expected validation error, got %v", err)
			})
		}

		var count int64
		require.NoError(t, db.Model(&models.Bundle{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("should keep a single default per owner", func(t *testing.T) {
		db, svc, sw := newBundleTestService(t)

		for i := 0; i < 5; i++ {
			_, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{
				Name:        fmt.Sprintf("bundle %d", i),
				SoftwareIDs: ids(sw[0]),
				IsDefault:   true,
			})
			require.NoError(t, err)
			assert.Len(t, defaultBundles(t, db, "u1"), 1)
		}

		_, err := svc.CreateBundle("u2", dtos.BundleCreateRequest{Name: "other", SoftwareIDs: ids(sw[1]), IsDefault: true})
		require.NoError(t, err)

		defaults := defaultBundles(t, db, "u1")
		require.Len(t, defaults, 1)
		assert.Equal(t, "bundle 4", defaults[0].Name)
		assert.Len(t, defaultBundles(t, db, "u2"), 1)
	})

	t.Run("should keep a single default under concurrent creates", func(t *testing.T) {
		db, svc, sw := newBundleTestService(t)

		var wg sync.WaitGroup
		errs := make([]error, 10)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = svc.CreateBundle("u1", dtos.BundleCreateRequest{
					Name:        fmt.Sprintf("bundle %d", i),
					SoftwareIDs: ids(sw[i%len(sw)]),
					IsDefault:   true,
				})
			}()
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.Len(t, defaultBundles(t, db, "u1"), 1)
	})

	t.Run("should roll back everything if the items cannot be written", func(t *testing.T) {
		db, _, sw := newBundleTestService(t)
		repo := failingItemsRepository{BundleRepository: repositories.NewBundleRepository(db)}
		svc := NewBundleService(repo, NewSoftwareService(repositories.NewSoftwareRepository(db)))

		previous := models.Bundle{OwnerID: "u1", Name: "previous", IsDefault: true}
		require.NoError(t, db.Create(&previous).Error)

		_, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "new", SoftwareIDs: ids(sw[0]), IsDefault: true})
		assert.True(t, shared.IsStorage(err))

		var bundles []models.Bundle
		require.NoError(t, db.Where("owner_id = ?", "u1").Find(&bundles).Error)
		require.Len(t, bundles, 1)
		assert.Equal(t, previous.ID, bundles[0].ID)
		assert.True(t, bundles[0].IsDefault)
	})
}

type failingItemsRepository struct {
	shared.BundleRepository
}

func (r failingItemsRepository) ReplaceItems(tx shared.DB, bundleID uuid.UUID, softwareIDs []int64) error {
	return fmt.Errorf("disk full")
}

func TestUpdateBundle(t *testing.T) {
	t.Run("should replace the whole membership", func(t *testing.T) {
		db, svc, sw := newBundleTestService(t)
		bundle, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "b", SoftwareIDs: ids(sw[0], sw[1], sw[2])})
		require.NoError(t, err)

		newIDs := ids(sw[3], sw[1])
		updated, err := svc.UpdateBundle("u1", bundle.ID, dtos.BundlePatchRequest{SoftwareIDs: &newIDs})
		require.NoError(t, err)

		assert.Equal(t, newIDs, updated.SoftwareIDs())
		assert.Equal(t, "b", updated.Name)

		var items []models.BundleItem
		require.NoError(t, db.Where("bundle_id = ?", bundle.ID).Order("sort_order").Find(&items).Error)
		require.Len(t, items, 2)
		assert.Equal(t, sw[3].ID, items[0].SoftwareID)
		assert.Equal(t, 1, items[0].SortOrder)
		assert.Equal(t, sw[1].ID, items[1].SoftwareID)
		assert.Equal(t, 2, items[1].SortOrder)
	})

	t.Run("should only touch the fields which are set", func(t *testing.T) {
		_, svc, sw := newBundleTestService(t)
		bundle, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "b", SoftwareIDs: ids(sw[0], sw[1]), IsDefault: true})
		require.NoError(t, err)

		updated, err := svc.UpdateBundle("u1", bundle.ID, dtos.BundlePatchRequest{Name: utils.Ptr("renamed")})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Name)
		assert.True(t, updated.IsDefault)
		assert.Equal(t, ids(sw[0], sw[1]), updated.SoftwareIDs())

		updated, err = svc.UpdateBundle("u1", bundle.ID, dtos.BundlePatchRequest{IsDefault: utils.Ptr(false)})
		require.NoError(t, err)
		assert.False(t, updated.IsDefault)
		assert.Equal(t, "renamed", updated.Name)
	})

	t.Run("should reject an empty membership list", func(t *testing.T) {
		_, svc, sw := newBundleTestService(t)
		bundle, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "b", SoftwareIDs: ids(sw[0])})
		require.NoError(t, err)

		empty := []int64{}
		_, err = svc.UpdateBundle("u1", bundle.ID, dtos.BundlePatchRequest{SoftwareIDs: &empty})
		assert.True(t, shared.IsValidation(err))

		_, err = svc.UpdateBundle("u1", bundle.ID, dtos.BundlePatchRequest{Name: utils.Ptr(" ")})
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("should move the default flag", func(t *testing.T) {
		db, svc, sw := newBundleTestService(t)
		first, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "first", SoftwareIDs: ids(sw[0]), IsDefault: true})
		require.NoError(t, err)
		second, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "second", SoftwareIDs: ids(sw[1])})
		require.NoError(t, err)

		_, err = svc.UpdateBundle("u1", second.ID, dtos.BundlePatchRequest{IsDefault: utils.Ptr(true)})
		require.NoError(t, err)

		defaults := defaultBundles(t, db, "u1")
		require.Len(t, defaults, 1)
		assert.Equal(t, second.ID, defaults[0].ID)

		// setting it again on the current default is a no-op for the invariant
		_, err = svc.UpdateBundle("u1", second.ID, dtos.BundlePatchRequest{IsDefault: utils.Ptr(true)})
		require.NoError(t, err)
		defaults = defaultBundles(t, db, "u1")
		require.Len(t, defaults, 1)
		assert.NotEqual(t, first.ID, defaults[0].ID)
	})

	t.Run("example scenario", func(t *testing.T) {
		db, svc, sw := newBundleTestService(t)

		devSetup, err := svc.CreateBundle("U1", dtos.BundleCreateRequest{Name: "Dev Setup", SoftwareIDs: ids(sw[2], sw[0], sw[1])})
		require.NoError(t, err)
		_, err = svc.UpdateBundle("U1", devSetup.ID, dtos.BundlePatchRequest{IsDefault: utils.Ptr(true)})
		require.NoError(t, err)
		media, err := svc.CreateBundle("U1", dtos.BundleCreateRequest{Name: "Media", SoftwareIDs: ids(sw[1]), IsDefault: true})
		require.NoError(t, err)

		devSetup, err = svc.GetBundle("U1", devSetup.ID)
		require.NoError(t, err)
		media, err = svc.GetBundle("U1", media.ID)
		require.NoError(t, err)

		assert.False(t, devSetup.IsDefault)
		assert.True(t, media.IsDefault)
		assert.Len(t, defaultBundles(t, db, "U1"), 1)
	})
}

func TestBundleOwnership(t *testing.T) {
	_, svc, sw := newBundleTestService(t)
	bundle, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "mine", SoftwareIDs: ids(sw[0])})
	require.NoError(t, err)

	t.Run("should return an authorization error for other owners", func(t *testing.T) {
		_, err := svc.GetBundle("u2", bundle.ID)
		assert.True(t, shared.IsAuthorization(err))

		_, err = svc.UpdateBundle("u2", bundle.ID, dtos.BundlePatchRequest{Name: utils.Ptr("stolen")})
		assert.True(t, shared.IsAuthorization(err))

		err = svc.DeleteBundle("u2", bundle.ID)
		assert.True(t, shared.IsAuthorization(err))

		got, err := svc.GetBundle("u1", bundle.ID)
		require.NoError(t, err)
		assert.Equal(t, "mine", got.Name)
	})

	t.Run("should return not found for unknown bundles", func(t *testing.T) {
		_, err := svc.GetBundle("u1", uuid.New())
		assert.True(t, shared.IsNotFound(err))

		err = svc.DeleteBundle("u1", uuid.New())
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestListAndDeleteBundles(t *testing.T) {
	db, svc, sw := newBundleTestService(t)

	a, err := svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "a", SoftwareIDs: ids(sw[0], sw[1])})
	require.NoError(t, err)
	_, err = svc.CreateBundle("u1", dtos.BundleCreateRequest{Name: "b", SoftwareIDs: ids(sw[2]), IsDefault: true})
	require.NoError(t, err)
	_, err = svc.CreateBundle("u2", dtos.BundleCreateRequest{Name: "c", SoftwareIDs: ids(sw[2])})
	require.NoError(t, err)

	bundles, err := svc.ListBundles("u1")
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Equal(t, "b", bundles[0].Name)
	assert.Equal(t, ids(sw[0], sw[1]), bundles[1].SoftwareIDs())

	require.NoError(t, svc.DeleteBundle("u1", a.ID))

	bundles, err = svc.ListBundles("u1")
	require.NoError(t, err)
	assert.Len(t, bundles, 1)

	var items int64
	require.NoError(t, db.Model(&models.BundleItem{}).Where("bundle_id = ?", a.ID).Count(&items).Error)
	assert.Zero(t, items)
}
