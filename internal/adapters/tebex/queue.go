package tebex

import (
	"context"
	"errors"
	"net/http"

	"github.com/example/tebexd/internal/core/delivery"
	"github.com/example/tebexd/internal/ports/secondary"
)

type queueResponse struct {
	Players []queuePlayer `json:"players"`
}

type queuePlayer struct {
	ID       delivery.AccountID `json:"id"`
	Name     string             `json:"name"`
	Commands []delivery.Command `json:"commands"`
}

type commandsResponse struct {
	Commands []delivery.Command `json:"commands"`
}

type offlineCommandsResponse struct {
	Commands []offlineCommand `json:"commands"`
}

type offlineCommand struct {
	delivery.Command
	Player struct {
		ID   delivery.AccountID `json:"id"`
		Name string             `json:"name"`
	} `json:"player"`
}

type userResponse struct {
	ID delivery.AccountID `json:"id"`
}

type deleteRequest struct {
	IDs []delivery.CommandID `json:"ids"`
}

// FetchQueue reads GET /queue. When the response lists players without
// inline commands, the offline commands are read from
// GET /queue/offline-commands and attached to their players.
func (c *Client) FetchQueue(ctx context.Context) (*secondary.QueueSnapshot, error) {
	var resp queueResponse
	if err := c.do(ctx, http.MethodGet, "/queue", nil, &resp); err != nil {
		if errors.Is(err, errNoContent) {
			return &secondary.QueueSnapshot{}, nil
		}
		return nil, err
	}

	snapshot := &secondary.QueueSnapshot{}
	inline := false
	for _, p := range resp.Players {
		if p.Commands != nil {
			inline = true
		}
		snapshot.Accounts = append(snapshot.Accounts, secondary.QueuedAccount{
			ID:              p.ID,
			Principal:       p.Name,
			OfflineCommands: p.Commands,
		})
	}

	if inline || len(snapshot.Accounts) == 0 {
		return snapshot, nil
	}

	offline, err := c.fetchOfflineCommands(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snapshot.Accounts {
		snapshot.Accounts[i].OfflineCommands = offline[snapshot.Accounts[i].ID]
	}
	return snapshot, nil
}

func (c *Client) fetchOfflineCommands(ctx context.Context) (map[delivery.AccountID][]delivery.Command, error) {
	var resp offlineCommandsResponse
	if err := c.do(ctx, http.MethodGet, "/queue/offline-commands", nil, &resp); err != nil {
		if errors.Is(err, errNoContent) {
			return nil, nil
		}
		return nil, err
	}

	byAccount := make(map[delivery.AccountID][]delivery.Command)
	for _, cmd := range resp.Commands {
		byAccount[cmd.Player.ID] = append(byAccount[cmd.Player.ID], cmd.Command)
	}
	return byAccount, nil
}

// FetchOnlineCommands reads GET /queue/online-commands/{id}.
func (c *Client) FetchOnlineCommands(ctx context.Context, account delivery.AccountID) ([]delivery.Command, error) {
	var resp commandsResponse
	if err := c.do(ctx, http.MethodGet, "/queue/online-commands/"+string(account), nil, &resp); err != nil {
		if errors.Is(err, errNoContent) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Commands, nil
}

// LookupAccountID reads GET /user/{name}. A 404 or an empty body means the
// name has no remote account.
func (c *Client) LookupAccountID(ctx context.Context, principal string) (delivery.AccountID, bool, error) {
	var resp userResponse
	err := c.do(ctx, http.MethodGet, userPath(principal), nil, &resp)
	if errors.Is(err, errNoContent) {
		return "", false, nil
	}
	var te *secondary.TransportError
	if errors.As(err, &te) && te.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if resp.ID == "" {
		return "", false, nil
	}
	return resp.ID, true, nil
}

// DeleteCommands sends DELETE /queue with the ids in the body. An empty
// id list makes no request.
func (c *Client) DeleteCommands(ctx context.Context, ids []delivery.CommandID) error {
	if len(ids) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodDelete, "/queue", deleteRequest{IDs: ids}, nil)
}

var _ secondary.QueueClient = (*Client)(nil)
