package mongodb

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	TeamCollection         = "team"
	MatchRequestCollection = "matchrequest"

	defaultTimeout = 10 * time.Second
)

type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
	Monitor  *event.CommandMonitor
}

// Client owns the driver connection pool and the service database handle.
type Client struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect dials the deployment and pings the primary before returning.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, crerr.New("mongo uri is required")
	}
	database := strings.TrimSpace(cfg.Database)
	if database == "" {
		return nil, crerr.New("mongo database is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	if cfg.Monitor != nil {
		opts.SetMonitor(cfg.Monitor)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, crerr.Wrap(err, "connect mongo")
	}

	out := &Client{client: client, db: client.Database(database), timeout: timeout}
	if err := out.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return out, nil
}

func (c *Client) Database() *mongo.Database {
	return c.db
}

func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.Ping(pingCtx, readpref.Primary()); err != nil {
		return crerr.Wrap(err, "ping mongo")
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return crerr.Wrap(err, "disconnect mongo")
	}
	return nil
}
