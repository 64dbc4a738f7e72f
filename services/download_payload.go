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
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/l3montree-dev/sdm/utils"
	"github.com/pkg/errors"
)

var errPayloadSent = errors.New("payload was already sent")

// streamPayload sends a single blob as is.
type streamPayload struct {
	rc io.ReadCloser

	mu        sync.Mutex
	sent      bool
	closeOnce sync.Once
	closeErr  error
}

func newStreamPayload(rc io.ReadCloser) *streamPayload {
	return &streamPayload{rc: rc}
}

func (p *streamPayload) Send(ctx context.Context, w io.Writer) (int64, error) {
	p.mu.Lock()
	if p.sent {
		p.mu.Unlock()
		return 0, errPayloadSent
	}
	p.sent = true
	p.mu.Unlock()

	defer p.Close()
	return io.Copy(w, utils.ContextReader(ctx, p.rc))
}

func (p *streamPayload) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.rc.Close()
	})
	return p.closeErr
}

// bytesPayload sends generated content which is already in memory.
type bytesPayload struct {
	data []byte
}

func (p bytesPayload) Send(ctx context.Context, w io.Writer) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return io.Copy(w, bytes.NewReader(p.data))
}

func (p bytesPayload) Close() error {
	return nil
}
