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

package archive

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/l3montree-dev/sdm/shared"
)

// UniqueEntryNames renames entries whose name was already used (case
// insensitive) by appending " (n)" before the extension. Order is preserved.
func UniqueEntryNames(entries []shared.ArchiveEntry) []shared.ArchiveEntry {
	res := make([]shared.ArchiveEntry, len(entries))
	used := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		name := e.Name
		if _, ok := used[strings.ToLower(name)]; ok {
			ext := path.Ext(name)
			base := strings.TrimSuffix(name, ext)
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
				if _, taken := used[strings.ToLower(candidate)]; !taken {
					name = candidate
					break
				}
			}
		}
		used[strings.ToLower(name)] = struct{}{}
		e.Name = name
		res[i] = e
	}
	return res
}

func skippedComment(skipped []string) string {
	if len(skipped) == 0 {
		return ""
	}
	comment := fmt.Sprintf("%d file(s) could not be included: %s", len(skipped), strings.Join(skipped, ", "))
	// the zip comment length is stored in 16 bits
	if len(comment) > 0xffff {
		cut := 0xffff - 3
		for cut > 0 && !utf8.RuneStart(comment[cut]) {
			cut--
		}
		comment = comment[:cut] + "..."
	}
	return comment
}
