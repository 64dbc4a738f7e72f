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

package auth

import (
	"context"
	"fmt"

	"github.com/l3montree-dev/sdm/config"
	"github.com/l3montree-dev/sdm/shared"
	"github.com/ory/client-go"
	"go.uber.org/fx"
)

func GetOryAPIClient(url string) *client.APIClient {
	cfg := client.NewConfiguration()
	cfg.Servers = client.ServerConfigurations{
		{URL: url},
	}

	return client.NewAPIClient(cfg)
}

// adminClient resolves kratos sessions to identities.
type adminClient struct {
	apiClient *client.APIClient
}

var _ shared.AdminClient = adminClient{}

func NewAdminClient(apiClient *client.APIClient) adminClient {
	return adminClient{
		apiClient: apiClient,
	}
}

func identityFromSession(session *client.Session) (client.Identity, error) {
	if session == nil || session.Identity == nil {
		return client.Identity{}, fmt.Errorf("identity not found in session")
	}
	if session.Active != nil && !*session.Active {
		return client.Identity{}, fmt.Errorf("session is not active")
	}
	return *session.Identity, nil
}

func (a adminClient) GetIdentityFromCookie(ctx context.Context, cookie string) (client.Identity, error) {
	session, _, err := a.apiClient.FrontendAPI.ToSession(ctx).Cookie(cookie).Execute()
	if err != nil {
		return client.Identity{}, fmt.Errorf("could not get identity from cookie: %w", err)
	}
	return identityFromSession(session)
}

func (a adminClient) GetIdentityFromSessionToken(ctx context.Context, token string) (client.Identity, error) {
	session, _, err := a.apiClient.FrontendAPI.ToSession(ctx).XSessionToken(token).Execute()
	if err != nil {
		return client.Identity{}, fmt.Errorf("could not get identity from session token: %w", err)
	}
	return identityFromSession(session)
}

var Module = fx.Options(
	fx.Provide(func(cfg config.ServerConfig) shared.AdminClient {
		return NewAdminClient(GetOryAPIClient(cfg.OryKratosURL))
	}),
)
