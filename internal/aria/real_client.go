package aria

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/essentialco/ariactl/internal/logging"
)

// apiVersion is pinned: the IaaS API changes payload shapes between
// versions and every request must ask for the one we are written against.
const apiVersion = "2021-07-15"

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
)

// Options configures a RealClient.
type Options struct {
	// Host is the Aria Automation hostname, without scheme.
	Host     string
	Username string
	Password string

	// Domain is the identity source, e.g. "System Domain".
	Domain string

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// ReadTimeout bounds each GET; WriteTimeout bounds each mutating call.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RealClient implements Gateway against a live Aria Automation tenant.
type RealClient struct {
	host         string
	username     string
	password     string
	domain       string
	token        string
	readTimeout  time.Duration
	writeTimeout time.Duration
	httpClient   *http.Client
	log          zerolog.Logger
}

// NewRealClient creates a client for the given tenant. Login must be
// called before any other method.
func NewRealClient(opts Options) *RealClient {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
	}
	domain := opts.Domain
	if domain == "" {
		domain = "System Domain"
	}
	return &RealClient{
		host:         strings.TrimSuffix(opts.Host, "/"),
		username:     opts.Username,
		password:     opts.Password,
		domain:       domain,
		readTimeout:  opts.ReadTimeout,
		writeTimeout: opts.WriteTimeout,
		httpClient:   &http.Client{Transport: transport},
		log:          logging.WithComponent("aria"),
	}
}

// Login performs the two-step vRA 8.x token exchange: the identity service
// issues a refresh token which the IaaS endpoint trades for a bearer token.
// Some deployments hand back an access token directly on the first step.
func (c *RealClient) Login(ctx context.Context) error {
	loginReq := map[string]string{
		"username": c.username,
		"password": c.password,
		"domain":   c.domain,
	}
	var loginResp struct {
		RefreshToken string `json:"refresh_token"`
		AccessToken  string `json:"access_token"`
	}
	err := c.do(ctx, http.MethodPost, c.url("/csp/gateway/am/api/login?access_token"),
		loginReq, &loginResp, c.readTimeout)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if loginResp.RefreshToken == "" {
		if loginResp.AccessToken == "" {
			return fmt.Errorf("authentication failed: no token in login response")
		}
		c.token = loginResp.AccessToken
		return nil
	}

	var tokenResp struct {
		Token string `json:"token"`
	}
	err = c.do(ctx, http.MethodPost, c.url("/iaas/api/login"),
		map[string]string{"refreshToken": loginResp.RefreshToken}, &tokenResp, c.readTimeout)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}
	if tokenResp.Token == "" {
		return fmt.Errorf("token exchange failed: empty bearer token")
	}
	c.token = tokenResp.Token
	c.log.Debug().Msg("authenticated")
	return nil
}

// --- FabricReader ---

func (c *RealClient) Regions(ctx context.Context) ([]Region, error) {
	return listAll[Region](ctx, c, "/iaas/api/regions")
}

func (c *RealClient) FabricImages(ctx context.Context) ([]FabricImage, error) {
	return listAll[FabricImage](ctx, c, "/iaas/api/fabric-images")
}

func (c *RealClient) FabricComputes(ctx context.Context) ([]FabricCompute, error) {
	return listAll[FabricCompute](ctx, c, "/iaas/api/fabric-computes")
}

// --- ProfileManager ---

func (c *RealClient) FlavorProfiles(ctx context.Context) ([]FlavorProfile, error) {
	return listAll[FlavorProfile](ctx, c, "/iaas/api/flavor-profiles")
}

func (c *RealClient) CreateFlavorProfile(ctx context.Context, req FlavorProfileRequest) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, c.apiURL("/iaas/api/flavor-profiles"), req, &created, c.writeTimeout)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *RealClient) ImageProfiles(ctx context.Context) ([]ImageProfile, error) {
	return listAll[ImageProfile](ctx, c, "/iaas/api/image-profiles")
}

func (c *RealClient) CreateImageProfile(ctx context.Context, req ImageProfileRequest) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, c.apiURL("/iaas/api/image-profiles"), req, &created, c.writeTimeout)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

// --- StorageProfileManager ---

func (c *RealClient) StorageProfiles(ctx context.Context) ([]StorageProfile, error) {
	return listAll[StorageProfile](ctx, c, "/iaas/api/storage-profiles")
}

func (c *RealClient) StorageProfile(ctx context.Context, id string) (*StorageProfile, error) {
	var profile StorageProfile
	err := c.do(ctx, http.MethodGet, c.apiURL("/iaas/api/storage-profiles/"+id), nil, &profile, c.readTimeout)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *RealClient) CreateStorageProfile(ctx context.Context, req StorageProfileRequest) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, c.apiURL("/iaas/api/storage-profiles"), req, &created, c.writeTimeout)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *RealClient) UpdateStorageProfile(ctx context.Context, id string, req StorageProfileRequest) error {
	return c.do(ctx, http.MethodPut, c.apiURL("/iaas/api/storage-profiles/"+id), req, nil, c.writeTimeout)
}

// --- TagUpdater ---

func (c *RealClient) CloudZones(ctx context.Context) ([]CloudZone, error) {
	return listAll[CloudZone](ctx, c, "/iaas/api/zones")
}

func (c *RealClient) NetworkProfiles(ctx context.Context) ([]NetworkProfile, error) {
	return listAll[NetworkProfile](ctx, c, "/iaas/api/network-profiles")
}

func (c *RealClient) UpdateCloudZoneTags(ctx context.Context, id, name string, tags []Tag) error {
	payload := cloudZonePatch{Name: name, Tags: tags}
	return c.do(ctx, http.MethodPatch, c.apiURL("/iaas/api/zones/"+id), payload, nil, c.writeTimeout)
}

func (c *RealClient) UpdateNetworkProfileTags(ctx context.Context, id string, tags []Tag) error {
	return c.do(ctx, http.MethodPatch, c.apiURL("/iaas/api/network-profiles/"+id), tagsPatch{Tags: tags}, nil, c.writeTimeout)
}

func (c *RealClient) UpdateFabricComputeTags(ctx context.Context, id string, tags []Tag) error {
	return c.do(ctx, http.MethodPatch, c.apiURL("/iaas/api/fabric-computes/"+id), tagsPatch{Tags: tags}, nil, c.writeTimeout)
}

// --- transport ---

// url builds an absolute URL without the apiVersion parameter. Hosts are
// normally bare hostnames; an explicit scheme is honored when present.
func (c *RealClient) url(path string) string {
	if strings.Contains(c.host, "://") {
		return c.host + path
	}
	return "https://" + c.host + path
}

// apiURL builds an absolute URL with the pinned apiVersion parameter.
func (c *RealClient) apiURL(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return c.url(path) + sep + "apiVersion=" + apiVersion
}

// do issues one request bounded by the given timeout and decodes a JSON
// response into out when out is non-nil. Non-2xx responses become an
// *APIError carrying the backend message. There is exactly one delivery
// attempt per call; re-running the tool is the retry mechanism.
func (c *RealClient) do(ctx context.Context, method, url string, body, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug().Str("method", method).Str("url", url).Int("status", resp.StatusCode).Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// listAll fetches every page of a paginated endpoint, following the
// `_links.next` href until no next page is present. A failed page read
// returns an error so callers can tell "unavailable" apart from "empty".
func listAll[T any](ctx context.Context, c *RealClient, path string) ([]T, error) {
	var results []T
	url := c.apiURL(path)

	for url != "" {
		var pg page
		if err := c.do(ctx, http.MethodGet, url, nil, &pg, c.readTimeout); err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", path, err)
		}
		for _, raw := range pg.Content {
			var item T
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to decode %s entry: %w", path, err)
			}
			results = append(results, item)
		}
		if next, ok := pg.Links.Next(); ok {
			url = c.url(next)
		} else {
			url = ""
		}
	}
	return results, nil
}
