package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when the lookup service has no pokemon by that name.
var ErrNotFound = errors.New("pokemon not found")

// maxTypes is the number of type slots a pokemon has.
const maxTypes = 2

// Pokemon is the part of a lookup result the service stores.
type Pokemon struct {
	Name      string
	Types     []string // ordered by slot, at most two
	Abilities []string
}

// Lookup resolves a pokemon by name.
type Lookup interface {
	Find(ctx context.Context, name string) (*Pokemon, error)
}

// Client looks pokemon up in PokeAPI.
type Client struct {
	baseURL string
	timeout time.Duration
	group   singleflight.Group
}

// NewClient creates a PokeAPI client.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: time.Duration(timeout) * time.Second,
	}
}

// apiPokemon mirrors the fields of GET /pokemon/{name} we read.
type apiPokemon struct {
	Name      string `json:"name"`
	Abilities []struct {
		Ability struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// Find fetches a pokemon. Concurrent calls for the same name share one
// request. There is no retry; a failed request fails the call.
func (c *Client) Find(ctx context.Context, name string) (*Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.fetch(key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Pokemon), nil
}

func (c *Client) fetch(name string) (*Pokemon, error) {
	agent := fiber.Get(c.baseURL + "/pokemon/" + url.PathEscape(name))
	agent.Timeout(c.timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return nil, fmt.Errorf("invalid lookup request: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("lookup request failed: %w", errors.Join(errs...))
	}
	switch {
	case code == fiber.StatusNotFound:
		return nil, ErrNotFound
	case code != fiber.StatusOK:
		return nil, fmt.Errorf("lookup returned status %d", code)
	}

	var payload apiPokemon
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}
	return payload.toPokemon(name), nil
}

func (p apiPokemon) toPokemon(requested string) *Pokemon {
	types := p.Types
	sort.SliceStable(types, func(i, j int) bool { return types[i].Slot < types[j].Slot })

	out := &Pokemon{Name: p.Name}
	if out.Name == "" {
		out.Name = requested
	}
	for _, t := range types {
		if len(out.Types) == maxTypes {
			break
		}
		if t.Type.Name != "" {
			out.Types = append(out.Types, t.Type.Name)
		}
	}
	for _, a := range p.Abilities {
		if a.Ability.Name != "" {
			out.Abilities = append(out.Abilities, a.Ability.Name)
		}
	}
	return out
}
