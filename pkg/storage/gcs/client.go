package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/harrowdigital/printdesk-backend/pkg/config"
	"github.com/harrowdigital/printdesk-backend/pkg/logger"
)

const (
	pingTimeout = 5 * time.Second
	publicHost  = "storage.googleapis.com"
)

// Client manages per-order upload folders inside a single bucket. A "folder"
// is an object prefix with a zero-byte marker so the prefix is browseable
// before the first upload lands.
type Client struct {
	raw    *storage.Client
	bucket string
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

func NewClient(ctx context.Context, cfg config.UploadsConfig, gcp config.GCPConfig, logg *logger.Logger) (*Client, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("uploads bucket name is required")
	}

	var opts []option.ClientOption
	if gcp.ApplicationCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(gcp.ApplicationCredentials))
	}

	raw, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	client := &Client{raw: raw, bucket: cfg.BucketName}

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("storage health check failed: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "storage client initialized")
	}

	return client, nil
}

// Ping verifies the uploads bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return errors.New("storage client not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	_, err := c.raw.Bucket(c.bucket).Attrs(ctx)
	return err
}

// CreateFolder provisions the upload prefix for a reference and opens it for
// link-holder writes. Creating an already-existing folder is not an error.
func (c *Client) CreateFolder(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", errors.New("folder name is required")
	}

	marker := name + "/"
	writer := c.raw.Bucket(c.bucket).Object(marker).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	if err := writer.Close(); err != nil {
		var gerr *googleapi.Error
		if !errors.As(err, &gerr) || gerr.Code != 412 {
			return "", fmt.Errorf("creating folder marker %q: %w", marker, err)
		}
	}

	// Legacy writer ACL on the marker; bucket policy handles the rest. Best
	// effort: uniform bucket-level access rejects per-object ACLs.
	if err := c.raw.Bucket(c.bucket).Object(marker).ACL().Set(ctx, storage.AllUsers, storage.RoleWriter); err != nil {
		var gerr *googleapi.Error
		if !errors.As(err, &gerr) || gerr.Code != 400 {
			return "", fmt.Errorf("sharing folder %q: %w", marker, err)
		}
	}

	return c.FolderURL(name), nil
}

// FolderURL returns the public browse URL for a reference's upload prefix.
func (c *Client) FolderURL(name string) string {
	return fmt.Sprintf("https://%s/%s/%s/", publicHost, c.bucket, name)
}

// DeletePrefix removes every object under the prefix and returns how many
// were deleted. Already-missing objects are not errors.
func (c *Client) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, errors.New("prefix is required")
	}

	bucket := c.raw.Bucket(c.bucket)
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix + "/"})

	deleted := 0
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return deleted, fmt.Errorf("listing objects under %q: %w", prefix, err)
		}
		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
			if errors.Is(err, storage.ErrObjectNotExist) {
				continue
			}
			return deleted, fmt.Errorf("deleting object %q: %w", attrs.Name, err)
		}
		deleted++
	}
	return deleted, nil
}

// PrefixFromURL extracts the upload prefix from a folder URL previously
// produced by FolderURL. It returns false for anything that is not a storage
// link into the uploads bucket (sentinels, hand-edited values).
func (c *Client) PrefixFromURL(raw string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host != publicHost {
		return "", false
	}
	path := strings.Trim(parsed.Path, "/")
	bucketPrefix := c.bucket + "/"
	if !strings.HasPrefix(path, bucketPrefix) {
		return "", false
	}
	prefix := strings.TrimPrefix(path, bucketPrefix)
	if prefix == "" {
		return "", false
	}
	return prefix, true
}

// Close releases the underlying client.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
