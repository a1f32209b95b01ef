package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quill/internal/models/db_models"
	"quill/internal/repositories"
	"quill/pkg/utils"
)

var testLogger = zap.NewNop()

type fakeLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	delay     time.Duration
	requests  []utils.CompletionRequest
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Complete(_ context.Context, req utils.CompletionRequest) (string, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "generated copy", nil
	}
	out := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return out, nil
}

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeDocumentRepo struct {
	docs    map[uuid.UUID]*db_models.Document
	updates []map[string]interface{}
	creates int
	err     error
}

func newFakeDocumentRepo(docs ...*db_models.Document) *fakeDocumentRepo {
	r := &fakeDocumentRepo{docs: make(map[uuid.UUID]*db_models.Document)}
	for _, d := range docs {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		r.docs[d.ID] = d
	}
	return r
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *db_models.Document) error {
	if r.err != nil {
		return r.err
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	r.creates++
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeDocumentRepo) FindByIdAndUser(_ context.Context, id, userID uuid.UUID) (*db_models.Document, error) {
	if r.err != nil {
		return nil, r.err
	}
	d, ok := r.docs[id]
	if !ok || d.UserID != userID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocumentRepo) List(_ context.Context, filter repositories.DocumentFilter) ([]db_models.Document, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	var out []db_models.Document
	for _, d := range r.docs {
		if d.UserID == filter.UserID && (!filter.StylesOnly || d.IsStyle) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, int64(len(out)), nil
}

func (r *fakeDocumentRepo) UpdateFields(_ context.Context, doc *db_models.Document, fields map[string]interface{}) error {
	if r.err != nil {
		return r.err
	}
	r.updates = append(r.updates, fields)
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, doc *db_models.Document) error {
	delete(r.docs, doc.ID)
	return nil
}

type fakeAccountRepo struct {
	users map[uuid.UUID]*db_models.User
	subs  []db_models.Subscription
	err   error
}

func newFakeAccountRepo(users ...*db_models.User) *fakeAccountRepo {
	r := &fakeAccountRepo{users: make(map[uuid.UUID]*db_models.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeAccountRepo) Insert(_ context.Context, user *db_models.User) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return utils.ErrConflict
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeAccountRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if r.err != nil {
		return r.err
	}
	u := r.users[id]
	if v, ok := fields["brand_name"].(string); ok {
		u.BrandName = v
	}
	if v, ok := fields["brand_info"].(string); ok {
		u.BrandInfo = v
	}
	return nil
}

func (r *fakeAccountRepo) SetActivePersona(_ context.Context, id uuid.UUID, personaID *uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.users[id].ActivePersonaID = personaID
	return nil
}

func (r *fakeAccountRepo) UpdateSubscription(_ context.Context, id uuid.UUID, sub db_models.Subscription) error {
	if r.err != nil {
		return r.err
	}
	r.subs = append(r.subs, sub)
	r.users[id].Subscription = sub
	return nil
}

type fakePersonaRepo struct {
	personas map[uuid.UUID]*db_models.Persona
	err      error
}

func newFakePersonaRepo(personas ...*db_models.Persona) *fakePersonaRepo {
	r := &fakePersonaRepo{personas: make(map[uuid.UUID]*db_models.Persona)}
	for _, p := range personas {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.personas[p.ID] = p
	}
	return r
}

func (r *fakePersonaRepo) Create(_ context.Context, p *db_models.Persona) error {
	if r.err != nil {
		return r.err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.personas[p.ID] = p
	return nil
}

func (r *fakePersonaRepo) FindByIdAndUser(_ context.Context, id, userID uuid.UUID) (*db_models.Persona, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.personas[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePersonaRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]db_models.Persona, error) {
	var out []db_models.Persona
	for _, p := range r.personas {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, r.err
}

func (r *fakePersonaRepo) UpdateFields(_ context.Context, p *db_models.Persona, _ map[string]interface{}) error {
	cp := *p
	r.personas[p.ID] = &cp
	return r.err
}

func (r *fakePersonaRepo) Delete(_ context.Context, p *db_models.Persona) error {
	delete(r.personas, p.ID)
	return r.err
}

func (r *fakePersonaRepo) CreateKeyMessage(_ context.Context, msg *db_models.KeyMessage) error {
	p := r.personas[msg.PersonaID]
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	p.KeyMessages = append(p.KeyMessages, *msg)
	return r.err
}

func (r *fakePersonaRepo) FindKeyMessage(_ context.Context, personaID, id uuid.UUID) (*db_models.KeyMessage, error) {
	p, ok := r.personas[personaID]
	if !ok {
		return nil, r.err
	}
	for _, m := range p.KeyMessages {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, r.err
}

func (r *fakePersonaRepo) ListKeyMessages(_ context.Context, personaID uuid.UUID) ([]db_models.KeyMessage, error) {
	if p, ok := r.personas[personaID]; ok {
		return p.KeyMessages, r.err
	}
	return nil, r.err
}

func (r *fakePersonaRepo) UpdateKeyMessage(_ context.Context, msg *db_models.KeyMessage, _ map[string]interface{}) error {
	p := r.personas[msg.PersonaID]
	for i := range p.KeyMessages {
		if p.KeyMessages[i].ID == msg.ID {
			p.KeyMessages[i] = *msg
		}
	}
	return r.err
}

func (r *fakePersonaRepo) DeleteKeyMessage(_ context.Context, msg *db_models.KeyMessage) error {
	p := r.personas[msg.PersonaID]
	kept := p.KeyMessages[:0]
	for _, m := range p.KeyMessages {
		if m.ID != msg.ID {
			kept = append(kept, m)
		}
	}
	p.KeyMessages = kept
	return r.err
}

type recordedEvent struct {
	percent int
	message string
	log     bool
}

type recordingReporter struct {
	events []recordedEvent
}

func (r *recordingReporter) Progress(percent int, message string) {
	r.events = append(r.events, recordedEvent{percent: percent, message: message})
}

func (r *recordingReporter) Log(message string) {
	r.events = append(r.events, recordedEvent{message: message, log: true})
}

func (r *recordingReporter) percents() []int {
	var out []int
	for _, e := range r.events {
		if !e.log {
			out = append(out, e.percent)
		}
	}
	return out
}
