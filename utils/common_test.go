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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqBy(t *testing.T) {
	t.Run("should keep the first occurrence and preserve order", func(t *testing.T) {
		res := UniqBy([]int{3, 1, 3, 2, 1}, func(i int) int { return i })
		assert.Equal(t, []int{3, 1, 2}, res)
	})
}

func TestDuplicates(t *testing.T) {
	t.Run("should report every duplicated value once", func(t *testing.T) {
		assert.Equal(t, []int{4, 2}, Duplicates([]int{4, 2, 4, 4, 2, 7}))
	})
	t.Run("should return nil if there are no duplicates", func(t *testing.T) {
		assert.Nil(t, Duplicates([]int{1, 2, 3}))
	})
}

func TestSplitCommaSeparated(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, SplitCommaSeparated(" http://a, ,http://b "))
	assert.Empty(t, SplitCommaSeparated(""))
}
