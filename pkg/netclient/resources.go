package netclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Thin typed helpers over the v2.0 REST surface. They marshal their own JSON
// before handing the payload to DoRequest; the request layer below never
// serializes anything.

const (
	networksPath = "/v2.0/networks"
	subnetsPath  = "/v2.0/subnets"
	portsPath    = "/v2.0/ports"
)

// Network is a layer-2 network on the control plane.
type Network struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Status       string   `json:"status,omitempty"`
	AdminStateUp bool     `json:"admin_state_up"`
	Shared       bool     `json:"shared,omitempty"`
	Subnets      []string `json:"subnets,omitempty"`
}

// Subnet is an IP block carved out of a network.
type Subnet struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	NetworkID string `json:"network_id"`
	CIDR      string `json:"cidr"`
	IPVersion int    `json:"ip_version"`
	GatewayIP string `json:"gateway_ip,omitempty"`
}

// Port is an attachment point on a network.
type Port struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	NetworkID  string `json:"network_id"`
	Status     string `json:"status,omitempty"`
	MACAddress string `json:"mac_address,omitempty"`
	DeviceID   string `json:"device_id,omitempty"`
}

// ListNetworks returns all networks visible to the configured token.
func (c *HTTPClient) ListNetworks(ctx context.Context) ([]Network, error) {
	var out struct {
		Networks []Network `json:"networks"`
	}
	if err := c.getJSON(ctx, networksPath, &out); err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	return out.Networks, nil
}

// GetNetwork returns a single network by id.
func (c *HTTPClient) GetNetwork(ctx context.Context, id string) (*Network, error) {
	var out struct {
		Network Network `json:"network"`
	}
	if err := c.getJSON(ctx, networksPath+"/"+id, &out); err != nil {
		return nil, fmt.Errorf("get network %s: %w", id, err)
	}
	return &out.Network, nil
}

// CreateNetwork creates a network and returns the server-side representation.
func (c *HTTPClient) CreateNetwork(ctx context.Context, network Network) (*Network, error) {
	var out struct {
		Network Network `json:"network"`
	}
	if err := c.postJSON(ctx, networksPath, map[string]Network{"network": network}, &out); err != nil {
		return nil, fmt.Errorf("create network: %w", err)
	}
	return &out.Network, nil
}

// DeleteNetwork removes a network by id.
func (c *HTTPClient) DeleteNetwork(ctx context.Context, id string) error {
	if err := c.deleteResource(ctx, networksPath+"/"+id); err != nil {
		return fmt.Errorf("delete network %s: %w", id, err)
	}
	return nil
}

// ListSubnets returns all subnets visible to the configured token.
func (c *HTTPClient) ListSubnets(ctx context.Context) ([]Subnet, error) {
	var out struct {
		Subnets []Subnet `json:"subnets"`
	}
	if err := c.getJSON(ctx, subnetsPath, &out); err != nil {
		return nil, fmt.Errorf("list subnets: %w", err)
	}
	return out.Subnets, nil
}

// CreateSubnet creates a subnet and returns the server-side representation.
func (c *HTTPClient) CreateSubnet(ctx context.Context, subnet Subnet) (*Subnet, error) {
	var out struct {
		Subnet Subnet `json:"subnet"`
	}
	if err := c.postJSON(ctx, subnetsPath, map[string]Subnet{"subnet": subnet}, &out); err != nil {
		return nil, fmt.Errorf("create subnet: %w", err)
	}
	return &out.Subnet, nil
}

// DeleteSubnet removes a subnet by id.
func (c *HTTPClient) DeleteSubnet(ctx context.Context, id string) error {
	if err := c.deleteResource(ctx, subnetsPath+"/"+id); err != nil {
		return fmt.Errorf("delete subnet %s: %w", id, err)
	}
	return nil
}

// ListPorts returns all ports visible to the configured token.
func (c *HTTPClient) ListPorts(ctx context.Context) ([]Port, error) {
	var out struct {
		Ports []Port `json:"ports"`
	}
	if err := c.getJSON(ctx, portsPath, &out); err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	return out.Ports, nil
}

// getJSON performs a classified GET and decodes the body into out. The
// configured cache, if any, is consulted first; only 200 responses are
// cached.
func (c *HTTPClient) getJSON(ctx context.Context, path string, out interface{}) error {
	key := c.cfg.EndpointURL + path

	if c.cache != nil {
		cached, ok, err := c.cache.Get(key)
		if err != nil {
			c.log.WarnObj("response cache read failed", "cache_error", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
		} else if ok {
			return json.Unmarshal(cached, out)
		}
	}

	resp, text, err := c.DoRequest(ctx, path, http.MethodGet, RequestOptions{})
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode(), messageFromBody(resp.Header().Get(headerContentType), text))
	}

	if c.cache != nil {
		if err := c.cache.Put(key, []byte(text)); err != nil {
			c.log.WarnObj("response cache write failed", "cache_error", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return json.Unmarshal([]byte(text), out)
}

// postJSON performs a classified POST with a JSON payload and decodes the
// 2xx response body into out.
func (c *HTTPClient) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	resp, text, err := c.DoRequest(ctx, path, http.MethodPost, RequestOptions{
		Body:        body,
		ContentType: mimeJSON,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode(), messageFromBody(resp.Header().Get(headerContentType), text))
	}

	return json.Unmarshal([]byte(text), out)
}

// deleteResource performs a classified DELETE and accepts 204 or 202.
func (c *HTTPClient) deleteResource(ctx context.Context, path string) error {
	resp, text, err := c.DoRequest(ctx, path, http.MethodDelete, RequestOptions{})
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusNoContent && resp.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("status %d: %s", resp.StatusCode(), messageFromBody(resp.Header().Get(headerContentType), text))
	}
	return nil
}
