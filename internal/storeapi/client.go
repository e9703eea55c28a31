package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// Client talks to a store API server over its unix socket.
type Client struct {
	client *http.Client
	server *url.URL
}

// NewClient creates a client for the store API socket at path.
func NewClient(path string) *Client {
	client := &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				var dialer net.Dialer
				return dialer.DialContext(ctx, "unix", path)
			},
		},
	}

	server, err := url.Parse("http://localhost")
	if err != nil {
		panic(err)
	}

	return &Client{client, server}
}

// AllocateScratch asks the store for a fresh scratch directory and returns
// its path. The prefix is used as a name hint for the directory.
func (c *Client) AllocateScratch(ctx context.Context, prefix string) (string, error) {
	var b bytes.Buffer
	err := json.NewEncoder(&b).Encode(scratchRequest{Prefix: prefix})
	if err != nil {
		panic(err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.createURL("/api/store/v1/scratch"), &b)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		var er errorResponse
		_ = json.NewDecoder(response.Body).Decode(&er)
		return "", fmt.Errorf("couldn't allocate scratch directory, got %d: %s", response.StatusCode, er.Message)
	}

	var pr pathResponse
	if err := json.NewDecoder(response.Body).Decode(&pr); err != nil {
		return "", err
	}
	return pr.Path, nil
}

// ResolvePipelineTree returns the path of the output tree of a previously
// built pipeline. A NotFoundError is returned when the store holds no tree
// for the id.
func (c *Client) ResolvePipelineTree(ctx context.Context, id string) (string, error) {
	return c.resolve(ctx, "/api/store/v1/trees/"+url.PathEscape(id), NewNotFoundError("no tree for pipeline %q", id))
}

// ResolveSourceCache returns the path of the cache directory for a source
// kind. A NotFoundError is returned when the store holds no cache for the
// kind.
func (c *Client) ResolveSourceCache(ctx context.Context, kind string) (string, error) {
	return c.resolve(ctx, "/api/store/v1/sources/"+url.PathEscape(kind), NewNotFoundError("no cache for source %q", kind))
}

func (c *Client) resolve(ctx context.Context, path string, notFound NotFoundError) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.createURL(path), nil)
	if err != nil {
		return "", err
	}

	response, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return "", notFound
	}
	if response.StatusCode != http.StatusOK {
		var er errorResponse
		_ = json.NewDecoder(response.Body).Decode(&er)
		return "", fmt.Errorf("couldn't resolve %s, got %d: %s", path, response.StatusCode, er.Message)
	}

	var pr pathResponse
	if err := json.NewDecoder(response.Body).Decode(&pr); err != nil {
		return "", err
	}
	return pr.Path, nil
}

func (c *Client) createURL(path string) string {
	u, err := c.server.Parse(path)
	if err != nil {
		// panic here, because `path` is always a literal string
		panic(err)
	}

	return u.String()
}
