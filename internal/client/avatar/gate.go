// Package avatar holds the avatar picked for the next profile update and
// uploads it to object storage when the update is submitted.
package avatar

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/client/notify"
	"github.com/dmitrijs2005/ignitegym/internal/logging"
)

const (
	messageNoImage    = "No image selected."
	messageUnreadable = "Unable to read the selected image."
	messageIsDir      = "The selected path is a directory."
)

// MaxSize is the largest accepted avatar, in bytes.
const MaxSize int64 = 5 * 1024 * 1024

// Candidate is an image the user picked. Size is in bytes.
type Candidate struct {
	Ref  string
	Size int64
}

// Gate accepts or rejects avatar candidates and keeps the last accepted one
// until it is cleared.
type Gate struct {
	notifier notify.Notifier
	log      logging.Logger

	mu      sync.Mutex
	pending *models.PendingAvatar
}

func NewGate(n notify.Notifier, log logging.Logger) *Gate {
	return &Gate{notifier: n, log: log}
}

// Select accepts c as the pending avatar when it fits MaxSize. A rejected
// candidate leaves the previous pending avatar in place.
func (g *Gate) Select(ctx context.Context, c Candidate) (models.PendingAvatar, error) {
	if c.Ref == "" {
		return g.reject(ctx, apperr.Domain(messageNoImage))
	}
	if c.Size > MaxSize {
		g.log.Info(ctx, "avatar rejected", "ref", c.Ref, "size", c.Size)
		return g.reject(ctx, apperr.Domain(apperr.MessageImageTooLarge))
	}

	p := models.PendingAvatar{Ref: c.Ref, Size: c.Size}
	g.mu.Lock()
	g.pending = &p
	g.mu.Unlock()
	return p, nil
}

// SelectFile is Select for a local file.
func (g *Gate) SelectFile(ctx context.Context, path string) (models.PendingAvatar, error) {
	fi, err := os.Stat(path)
	if err != nil {
		g.log.Warn(ctx, "avatar stat failed", "path", path, "error", err)
		return g.reject(ctx, apperr.Unknown(fmt.Errorf("stat %s: %w", path, err), messageUnreadable))
	}
	if fi.IsDir() {
		return g.reject(ctx, apperr.Domain(messageIsDir))
	}
	return g.Select(ctx, Candidate{Ref: path, Size: fi.Size()})
}

func (g *Gate) reject(ctx context.Context, e *apperr.Error) (models.PendingAvatar, error) {
	notify.Error(ctx, g.notifier, e)
	return models.PendingAvatar{}, e
}

// Pending returns a copy of the pending avatar, or nil.
func (g *Gate) Pending() *models.PendingAvatar {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return nil
	}
	p := *g.pending
	return &p
}

// Clear drops the pending avatar.
func (g *Gate) Clear() {
	g.mu.Lock()
	g.pending = nil
	g.mu.Unlock()
}
