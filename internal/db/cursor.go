package db

import (
	"encoding/json"
	"time"

	"github.com/loverprompt/loverprompt-backend/internal/crypto"
	"github.com/loverprompt/loverprompt-backend/internal/models"
)

// cursorKey is the sort key of the last item on a page.
type cursorKey struct {
	CreatedAt time.Time `json:"t"`
	ID        string    `json:"id"`
}

// CursorCodec seals page cursors so clients can neither read nor forge them.
type CursorCodec struct {
	sealer *crypto.Sealer
}

// NewCursorCodec returns a codec backed by the given sealer.
func NewCursorCodec(sealer *crypto.Sealer) *CursorCodec {
	return &CursorCodec{sealer: sealer}
}

func (c *CursorCodec) encode(createdAt time.Time, id string) (string, error) {
	b, err := json.Marshal(cursorKey{CreatedAt: createdAt.UTC(), ID: id})
	if err != nil {
		return "", err
	}
	return c.sealer.Seal(b)
}

// decode returns nil for an empty cursor.
func (c *CursorCodec) decode(op, token string) (*cursorKey, error) {
	if token == "" {
		return nil, nil
	}
	plain, err := c.sealer.Open(token)
	if err != nil {
		return nil, invalid(op, "malformed cursor")
	}
	var key cursorKey
	if err := json.Unmarshal(plain, &key); err != nil || key.ID == "" {
		return nil, invalid(op, "malformed cursor")
	}
	return &key, nil
}

// pageOf trims items fetched with a limit of pageSize+1 and builds the next cursor.
func pageOf[T any](c *CursorCodec, items []T, pageSize int, key func(T) (time.Time, string)) (*models.Page[T], error) {
	res := &models.Page[T]{Items: items}
	if len(items) <= pageSize {
		if res.Items == nil {
			res.Items = []T{}
		}
		return res, nil
	}
	res.Items = items[:pageSize]
	t, id := key(res.Items[pageSize-1])
	next, err := c.encode(t, id)
	if err != nil {
		return nil, err
	}
	res.NextCursor = next
	return res, nil
}
