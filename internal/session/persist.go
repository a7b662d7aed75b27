package session

import (
	"context"
	"encoding/json"
	"fmt"

	"vehicle-service-scheduler/internal/kv"
	"vehicle-service-scheduler/internal/model"
)

// Key is where the session flag lives in the key-value store.
const Key = "session"

// Persister reads and writes the serialized {email, role} flag.
type Persister struct {
	kv kv.Store
}

func NewPersister(store kv.Store) *Persister {
	return &Persister{kv: store}
}

// Read returns nil when no flag is stored.
func (p *Persister) Read(ctx context.Context) (*model.Session, error) {
	raw, err := p.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("%w: read flag: %v", model.ErrStorage, err)
	}
	if raw == nil {
		return nil, nil
	}
	var s model.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: decode flag: %v", model.ErrStorage, err)
	}
	if s.Email == "" || (s.Role != model.RoleAdmin && s.Role != model.RoleClient) {
		return nil, fmt.Errorf("%w: malformed flag", model.ErrStorage)
	}
	return &s, nil
}

func (p *Persister) Write(ctx context.Context, s model.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: encode flag: %v", model.ErrStorage, err)
	}
	if err := p.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("%w: write flag: %v", model.ErrStorage, err)
	}
	return nil
}

func (p *Persister) Clear(ctx context.Context) error {
	if err := p.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("%w: clear flag: %v", model.ErrStorage, err)
	}
	return nil
}
