package clerk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/zurichjs/rewards/internal/config"
	"github.com/zurichjs/rewards/internal/domain/user"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/logger"
)

// Client implements user.Repository against the Clerk backend API. The
// service's only durable state lives in each user's unsafe metadata
// document, read and written whole.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logger.Logger
}

// NewClient creates a Clerk-backed user repository. Transient failures
// are retried with backoff; the metadata write path depends on it being
// safe to retry, which the callers' idempotency checks guarantee.
func NewClient(cfg *config.Configuration, logger *logger.Logger) user.Repository {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil

	return &Client{
		httpClient: retryClient.StandardClient(),
		baseURL:    cfg.Clerk.BaseURL,
		apiKey:     cfg.Clerk.APIKey,
		logger:     logger,
	}
}

// clerkUser is the subset of the Clerk user object this service reads
type clerkUser struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	EmailAddresses []clerkEmail    `json:"email_addresses"`
	UnsafeMetadata json.RawMessage `json:"unsafe_metadata"`
}

type clerkEmail struct {
	EmailAddress string `json:"email_address"`
}

// Get retrieves a user and parses the metadata document
func (c *Client) Get(ctx context.Context, id string) (*user.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL(id), nil)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build user store request").
			Mark(ierr.ErrHTTPClient)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("User store is unreachable").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ierr.NewError("user not found").
			WithHintf("No user with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return nil, c.upstreamError(resp.StatusCode, "failed to fetch user")
	}

	var cu clerkUser
	if err := json.NewDecoder(resp.Body).Decode(&cu); err != nil {
		return nil, ierr.WithError(err).
			WithHint("User store returned an unexpected response").
			Mark(ierr.ErrHTTPClient)
	}

	return c.toUser(&cu)
}

// UpdateMetadata replaces the user's metadata document. The write is a
// blind overwrite of the previously read snapshot; see user.Repository
// for the accepted lost-update race.
func (c *Client) UpdateMetadata(ctx context.Context, id string, metadata user.Metadata) error {
	metadata.SchemaVersion = user.MetadataSchemaVersion

	payload, err := json.Marshal(map[string]any{
		"unsafe_metadata": metadata,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode metadata").
			Mark(ierr.ErrInternal)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.userURL(id), bytes.NewReader(payload))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build user store request").
			Mark(ierr.ErrHTTPClient)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("User store is unreachable").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ierr.NewError("user not found").
			WithHintf("No user with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return c.upstreamError(resp.StatusCode, "failed to update user metadata")
	}

	return nil
}

func (c *Client) toUser(cu *clerkUser) (*user.User, error) {
	metadata := user.NewMetadata()
	if len(cu.UnsafeMetadata) > 0 && string(cu.UnsafeMetadata) != "null" {
		if err := json.Unmarshal(cu.UnsafeMetadata, &metadata); err != nil {
			return nil, ierr.WithError(err).
				WithHint("User metadata is malformed").
				Mark(ierr.ErrInternal)
		}
	}
	if metadata.SchemaVersion > user.MetadataSchemaVersion {
		return nil, ierr.NewError("unsupported metadata schema version").
			WithHintf("User metadata uses schema version %d, this service understands up to %d",
				metadata.SchemaVersion, user.MetadataSchemaVersion).
			Mark(ierr.ErrInternal)
	}

	u := &user.User{
		ID:       cu.ID,
		Name:     fmt.Sprintf("%s %s", cu.FirstName, cu.LastName),
		Metadata: metadata,
	}
	if len(cu.EmailAddresses) > 0 {
		u.Email = cu.EmailAddresses[0].EmailAddress
	}
	return u, nil
}

func (c *Client) userURL(id string) string {
	return fmt.Sprintf("%s/v1/users/%s", c.baseURL, id)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *Client) upstreamError(status int, msg string) error {
	c.logger.Errorw("user store request failed", "status", status, "op", msg)
	return ierr.NewError(msg).
		WithHint("Something went wrong, please try again").
		Mark(ierr.ErrHTTPClient)
}
