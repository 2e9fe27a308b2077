// Package rcon implements the presence provider over a game server's RCON
// console.
package rcon

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gorcon "github.com/gorcon/rcon"

	"github.com/example/tebexd/internal/ports/secondary"
)

// DefaultTimeout bounds dialling and each exchange.
const DefaultTimeout = 5 * time.Second

// failurePrefixes mark console replies that reject a command.
var failurePrefixes = []string{
	"Unknown command",
	"Incorrect argument",
}

// Conn is an open RCON session.
type Conn interface {
	Execute(command string) (string, error)
	Close() error
}

// Dialer opens a session.
type Dialer func(address, password string, timeout time.Duration) (Conn, error)

func dialRCON(address, password string, timeout time.Duration) (Conn, error) {
	conn, err := gorcon.Dial(address, password, gorcon.SetDialTimeout(timeout), gorcon.SetDeadline(timeout))
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Provider is a PresenceProvider backed by one lazily dialled RCON
// session. Calls are serialised; the session is dropped after an I/O
// error and redialled on the next call.
type Provider struct {
	address  string
	password string
	timeout  time.Duration
	dial     Dialer

	mu   sync.Mutex
	conn Conn
}

// Option configures a Provider.
type Option func(*Provider)

// WithTimeout sets the dial and exchange timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.timeout = d
	}
}

// WithDialer replaces the RCON dialer (used by tests).
func WithDialer(d Dialer) Option {
	return func(p *Provider) {
		p.dial = d
	}
}

// NewProvider creates a provider for the console at address.
func NewProvider(address, password string, opts ...Option) *Provider {
	p := &Provider{
		address:  address,
		password: password,
		timeout:  DefaultTimeout,
		dial:     dialRCON,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Present runs "list" and returns the names it reports.
func (p *Provider) Present(ctx context.Context) ([]string, error) {
	resp, err := p.exec(ctx, "list")
	if err != nil {
		return nil, err
	}
	return parsePlayerList(resp), nil
}

// Execute runs a rendered command. principal is only used for errors; the
// command already names its target.
func (p *Provider) Execute(ctx context.Context, principal, command string) error {
	resp, err := p.exec(ctx, command)
	if err != nil {
		return err
	}
	for _, prefix := range failurePrefixes {
		if strings.HasPrefix(resp, prefix) {
			return fmt.Errorf("console rejected command for %s: %s", principal, strings.TrimSpace(resp))
		}
	}
	return nil
}

// Close drops the session, if any.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

func (p *Provider) exec(ctx context.Context, command string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		conn, err := p.dial(p.address, p.password, p.timeout)
		if err != nil {
			return "", fmt.Errorf("failed to connect to rcon at %s: %w", p.address, err)
		}
		p.conn = conn
	}

	resp, err := p.conn.Execute(command)
	if err != nil {
		_ = p.conn.Close()
		p.conn = nil
		return "", fmt.Errorf("rcon %q failed: %w", firstWord(command), err)
	}
	return resp, nil
}

// parsePlayerList reads the names after the first ':' of a "list" reply,
// e.g. "There are 2 of a max of 20 players online: Alice, Bob".
func parsePlayerList(resp string) []string {
	idx := strings.Index(resp, ":")
	if idx < 0 {
		return nil
	}
	fields := strings.FieldsFunc(resp[idx+1:], func(r rune) bool {
		return r == ',' || r == '\n'
	})

	var names []string
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func firstWord(command string) string {
	if i := strings.IndexByte(command, ' '); i > 0 {
		return command[:i]
	}
	return command
}

var _ secondary.PresenceProvider = (*Provider)(nil)
