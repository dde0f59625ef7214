package daemonclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"slate/internal/logging"
	"slate/internal/objcache"
)

// ErrOffline marks write failures caused by an unreachable daemon.
var ErrOffline = errors.New("daemon offline")

const (
	// DefaultTimeout bounds a normal request round trip.
	DefaultTimeout = 2 * time.Second
	// DefaultBulkTimeout bounds list queries whose payload scales with the
	// result set.
	DefaultBulkTimeout = 5 * time.Second

	defaultReadLimit     = 64 << 10
	defaultBulkReadLimit = 6 << 20
)

// Options configures a Client. The zero value of every field has a usable
// default except Host and Port.
type Options struct {
	Host          string
	Port          int
	Timeout       time.Duration
	BulkTimeout   time.Duration
	ReadLimit     int64
	BulkReadLimit int64
	Cache         *objcache.Cache
	Logger        *slog.Logger
}

// Client is a synchronous one-connection-per-call daemon client. Every
// call blocks the calling goroutine for up to its timeout; there is no
// pooling, pipelining or retry loop.
type Client struct {
	addr          string
	timeout       time.Duration
	bulkTimeout   time.Duration
	readLimit     int64
	bulkReadLimit int64
	cache         *objcache.Cache
	logger        *slog.Logger

	mu        sync.Mutex
	connected bool
}

// New builds a client. The cache may be shared with other components; a
// private one is created when nil.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BulkTimeout <= 0 {
		opts.BulkTimeout = DefaultBulkTimeout
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = defaultReadLimit
	}
	if opts.BulkReadLimit <= 0 {
		opts.BulkReadLimit = defaultBulkReadLimit
	}
	if opts.Cache == nil {
		opts.Cache = objcache.New()
	}

	return &Client{
		addr:          net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		timeout:       opts.Timeout,
		bulkTimeout:   opts.BulkTimeout,
		readLimit:     opts.ReadLimit,
		bulkReadLimit: opts.BulkReadLimit,
		cache:         opts.Cache,
		logger:        logging.NewComponentLogger(opts.Logger, "daemonclient"),
	}
}

// Cache exposes the cache the client reads through.
func (c *Client) Cache() *objcache.Cache { return c.cache }

// Address returns the host:port the client dials.
func (c *Client) Address() string { return c.addr }

// Connected returns the last known daemon availability without probing.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Probe pings the daemon and returns whether it is reachable and replying
// correctly.
func (c *Client) Probe() bool {
	reply, ok := c.post("ping", nil, false)
	return ok && reply.OK()
}

// Ping returns the daemon greeting: daemon identification, version and the
// current user uuid.
func (c *Client) Ping() (Reply, bool) {
	return c.post("ping", nil, false)
}

// Raise asks the daemon application to raise its main window. Fire and
// forget: the connection closes without reading a reply.
func (c *Client) Raise() {
	c.send("raise", nil)
}

// RootFolder returns the pipeline storage root the daemon is serving.
func (c *Client) RootFolder() string {
	reply, ok := c.post("getRootFolder", nil, false)
	if !ok || !reply.OK() {
		return ""
	}
	path, _ := reply.Content["path"].(string)
	return path
}

// GetData returns the metadata payload for an object, served from the
// cache when an entry younger than ttl exists. ttl <= 0 serves any cached
// entry regardless of age.
func (c *Client) GetData(uuid, objectType string, ttl time.Duration) (ObjectData, bool) {
	if uuid == "" {
		return ObjectData{}, false
	}
	if cached, ok := c.cache.Get(objcache.CategoryData, uuid, ttl); ok {
		if data, ok := cached.(ObjectData); ok {
			return data, true
		}
	}

	reply, ok := c.post("getData", []Arg{
		{Key: "uuid", Value: uuid},
		{Key: "objectType", Value: objectType},
	}, false)
	if !ok || !reply.OK() {
		return ObjectData{}, false
	}

	raw, _ := reply.Content["data"].(map[string]any)
	data := ObjectDataFromMap(raw)
	c.cache.Put(objcache.CategoryData, uuid, data)
	return data, true
}

// SetData writes the payload for an object back to the daemon and
// refreshes the cache.
func (c *Client) SetData(uuid, objectType string, data ObjectData) error {
	encoded, err := json.Marshal(data.ToMap())
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}

	reply, ok := c.post("setData", []Arg{
		{Key: "uuid", Value: uuid},
		{Key: "data", Value: string(encoded)},
		{Key: "objectType", Value: objectType},
	}, false)
	if !ok {
		return fmt.Errorf("setData %s: %w", uuid, ErrOffline)
	}
	if !reply.Accepted || !reply.Success {
		return fmt.Errorf("setData %s rejected: %s", uuid, reply.Message)
	}

	c.cache.Put(objcache.CategoryData, uuid, data)
	return nil
}

// GetPath returns the resolved folder path for an object, cache-first.
func (c *Client) GetPath(uuid, objectType string, ttl time.Duration) (string, bool) {
	if uuid == "" {
		return "", false
	}
	if cached, ok := c.cache.Get(objcache.CategoryPath, uuid, ttl); ok {
		if path, ok := cached.(string); ok {
			return path, true
		}
	}

	reply, ok := c.post("getPath", []Arg{
		{Key: "uuid", Value: uuid},
		{Key: "objectType", Value: objectType},
	}, false)
	if !ok || !reply.OK() {
		return "", false
	}

	path, _ := reply.Content["path"].(string)
	c.cache.Put(objcache.CategoryPath, uuid, path)
	return path, true
}

// UUIDFromPath resolves the object owning a file-system path. An empty
// string means the daemon does not know the path.
func (c *Client) UUIDFromPath(path, objectType string) string {
	if path == "" {
		return ""
	}
	reply, ok := c.post("uuidFromPath", []Arg{
		{Key: "path", Value: path},
		{Key: "objectType", Value: objectType},
	}, false)
	if !ok || !reply.OK() {
		return ""
	}
	uuid, _ := reply.Content["uuid"].(string)
	return uuid
}

// Create registers a new object with the daemon.
func (c *Client) Create(uuid, objectType string, data ObjectData) error {
	encoded, err := json.Marshal(data.ToMap())
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}

	reply, ok := c.post("create", []Arg{
		{Key: "uuid", Value: uuid},
		{Key: "data", Value: string(encoded)},
		{Key: "type", Value: objectType},
	}, false)
	if !ok {
		return fmt.Errorf("create %s: %w", uuid, ErrOffline)
	}
	if !reply.Accepted || !reply.Success {
		return fmt.Errorf("create %s rejected: %s", uuid, reply.Message)
	}

	c.cache.Put(objcache.CategoryData, uuid, data)
	return nil
}

// GetObjects lists every object of a type, payloads included. A bulk query:
// larger read buffer, longer timeout, every payload cached on the way out.
func (c *Client) GetObjects(objectType string) []Object {
	reply, ok := c.post("getObjects", []Arg{{Key: "type", Value: objectType}}, true)
	if !ok || !reply.OK() {
		return nil
	}

	raw, _ := reply.Content["objects"].([]any)
	objects := make([]Object, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		uuid, _ := m["uuid"].(string)
		if uuid == "" {
			continue
		}
		payload, _ := m["data"].(map[string]any)
		data := ObjectDataFromMap(payload)
		c.cache.Put(objcache.CategoryData, uuid, data)
		objects = append(objects, Object{UUID: uuid, Data: data})
	}
	return objects
}

// GetStatus returns the status object for an item/step pair.
func (c *Client) GetStatus(itemUUID, stepUUID string) (Object, bool) {
	reply, ok := c.post("getStatus", []Arg{
		{Key: "itemUuid", Value: itemUUID},
		{Key: "stepUuid", Value: stepUUID},
	}, false)
	if !ok || !reply.OK() {
		return Object{}, false
	}

	uuid, _ := reply.Content["uuid"].(string)
	if uuid == "" {
		return Object{}, false
	}
	payload, _ := reply.Content["data"].(map[string]any)
	return Object{UUID: uuid, Data: ObjectDataFromMap(payload)}, true
}

// send posts a query without reading a reply.
func (c *Client) send(command string, args []Arg) {
	query := buildQuery(command, args)
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		c.markOffline(err)
		return
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(c.timeout))
	if _, err := conn.Write([]byte(query)); err != nil {
		c.markOffline(err)
		return
	}
	c.markOnline()
}

// post sends one query and reads the JSON reply. The boolean reports
// transport success; the daemon being unreachable returns (sentinel,
// false), a malformed reply returns (sentinel, true).
func (c *Client) post(command string, args []Arg, bulk bool) (Reply, bool) {
	query := buildQuery(command, args)
	timeout := c.timeout
	limit := c.readLimit
	if bulk {
		timeout = c.bulkTimeout
		limit = c.bulkReadLimit
	}

	c.logger.Debug("daemon query", logging.String("query", command))

	conn, err := net.DialTimeout("tcp", c.addr, timeout)
	if err != nil {
		c.markOffline(err)
		return sentinelReply(), false
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	_ = conn.SetDeadline(deadline)

	if _, err := conn.Write([]byte(query)); err != nil {
		c.markOffline(err)
		return sentinelReply(), false
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		// Signal end-of-query so the daemon can reply and close.
		_ = tcp.CloseWrite()
	}

	raw, err := io.ReadAll(io.LimitReader(conn, limit))
	if err != nil {
		c.markOffline(err)
		return sentinelReply(), false
	}
	c.markOnline()

	var reply Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		c.logger.Debug("malformed daemon reply",
			logging.String("query", command),
			logging.Int("bytes", len(raw)),
			logging.Error(err))
		return sentinelReply(), true
	}

	if !reply.Accepted {
		c.logger.Debug("daemon rejected query", logging.String("query", reply.Query))
	} else if !reply.Success {
		c.logger.Debug("daemon could not answer query",
			logging.String("query", reply.Query),
			logging.String("message", reply.Message))
	}

	return reply, true
}

func (c *Client) markOffline(err error) {
	c.mu.Lock()
	was := c.connected
	c.connected = false
	c.mu.Unlock()

	if was {
		c.logger.Warn("daemon went offline", logging.Error(err))
	} else {
		c.logger.Debug("daemon unreachable", logging.Error(err))
	}
}

func (c *Client) markOnline() {
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
}
