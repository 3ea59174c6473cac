// Package wizard owns the onboarding progress state: current step,
// completed-step set, per-step draft data and document metadata. All
// mutations go through named operations and are followed by a best-effort
// write to the durable store; the in-memory state stays authoritative when
// persistence is unavailable.
package wizard

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

// Store persists wizard snapshots. Load reports ok=false when no snapshot
// exists yet; a decode failure is returned as an error so the caller can
// fall back to defaults.
type Store interface {
	Load() (*Snapshot, bool, error)
	Save(*Snapshot) error
}

// Wizard is the single source of truth for onboarding progress. Safe for
// concurrent use.
type Wizard struct {
	mu        sync.Mutex
	current   int
	completed map[int]bool
	formData  map[entity.StepKey]entity.StepPayload
	documents []entity.DocumentRecord

	store  Store
	logger *zap.Logger
}

// New creates a wizard hydrated from the store. A missing or unreadable
// snapshot falls back to defaults rather than failing.
func New(store Store, logger *zap.Logger) *Wizard {
	w := &Wizard{
		current:   1,
		completed: map[int]bool{},
		formData:  map[entity.StepKey]entity.StepPayload{},
		documents: []entity.DocumentRecord{},
		store:     store,
		logger:    logger,
	}

	snap, ok, err := store.Load()
	if err != nil {
		logger.Warn("Persisted onboarding state unreadable, starting fresh", zap.Error(err))
		return w
	}
	if !ok {
		return w
	}
	w.restore(snap)
	return w
}

func (w *Wizard) restore(snap *Snapshot) {
	if snap.CurrentStep >= 1 && snap.CurrentStep <= entity.TotalSteps {
		w.current = snap.CurrentStep
	}
	for _, s := range snap.CompletedSteps {
		if s >= 1 && s <= entity.TotalSteps {
			w.completed[s] = true
		}
	}
	for key, payload := range snap.FormData {
		w.formData[key] = payload
	}
	if len(snap.Documents) > 0 {
		w.documents = append(w.documents, snap.Documents...)
	}
}

// CurrentStep returns the step the user is actively on.
func (w *Wizard) CurrentStep() entity.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return entity.Step(w.current)
}

// CanAccessStep reports whether the step is reachable: step 1 always is,
// any later step only once its predecessor has been completed.
func (w *Wizard) CanAccessStep(step entity.Step) bool {
	if !step.Valid() {
		return false
	}
	if step == 1 {
		return true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.completed[int(step)-1]
}

// FurthestReachableStep returns the highest step that CanAccessStep allows.
func (w *Wizard) FurthestReachableStep() entity.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	step := 1
	for step < entity.TotalSteps && w.completed[step] {
		step++
	}
	return entity.Step(step)
}

// SetCurrentStep moves the user to the given step. Gating is the caller's
// responsibility (route guard via CanAccessStep); only bounds are checked
// here so backward navigation stays unconditional.
func (w *Wizard) SetCurrentStep(step entity.Step) error {
	if !step.Valid() {
		return ErrInvalidStep
	}
	w.mu.Lock()
	w.current = int(step)
	w.mu.Unlock()
	w.persist()
	return nil
}

// UpdateFormData replaces the payload for the step owning it. Last writer
// wins; there are no merge semantics.
func (w *Wizard) UpdateFormData(payload entity.StepPayload) {
	w.mu.Lock()
	w.formData[payload.Key()] = payload
	w.mu.Unlock()
	w.persist()
}

// FormData returns the stored payload for a step key, if any.
func (w *Wizard) FormData(key entity.StepKey) (entity.StepPayload, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.formData[key]
	return p, ok
}

// MarkStepComplete records a successful submission of the step. Idempotent.
func (w *Wizard) MarkStepComplete(step entity.Step) error {
	if !step.Valid() {
		return ErrInvalidStep
	}
	w.mu.Lock()
	w.completed[int(step)] = true
	w.mu.Unlock()
	w.persist()
	return nil
}

// IsStepComplete reports whether the step has been submitted successfully.
func (w *Wizard) IsStepComplete(step entity.Step) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.completed[int(step)]
}

// AddDocument appends an uploaded document's metadata.
func (w *Wizard) AddDocument(rec entity.DocumentRecord) {
	w.mu.Lock()
	w.documents = append(w.documents, rec)
	w.mu.Unlock()
	w.persist()
}

// DocumentPatch carries the fields UpdateDocument may change. Nil fields
// are left untouched.
type DocumentPatch struct {
	Name   *string
	URL    *string
	Status *entity.DocumentStatus
}

// UpdateDocument merges the patch into the document with the given id.
// An unknown id is a no-op; the server may reference documents uploaded
// from another session that this state never saw.
func (w *Wizard) UpdateDocument(id string, patch DocumentPatch) {
	w.mu.Lock()
	found := false
	for i := range w.documents {
		if w.documents[i].ID != id {
			continue
		}
		found = true
		if patch.Name != nil {
			w.documents[i].Name = *patch.Name
		}
		if patch.URL != nil {
			w.documents[i].URL = *patch.URL
		}
		if patch.Status != nil && patch.Status.IsValid() {
			w.documents[i].Status = *patch.Status
		}
		break
	}
	w.mu.Unlock()
	if !found {
		w.logger.Debug("Document update for unknown id ignored", zap.String("document_id", id))
		return
	}
	w.persist()
}

// Reset replaces the entire state with defaults and persists immediately.
// Only invoked for an explicit user-confirmed start-over.
func (w *Wizard) Reset() {
	w.mu.Lock()
	w.current = 1
	w.completed = map[int]bool{}
	w.formData = map[entity.StepKey]entity.StepPayload{}
	w.documents = []entity.DocumentRecord{}
	w.mu.Unlock()
	w.persist()
}

// Snapshot returns a deep copy of the current state.
func (w *Wizard) Snapshot() *Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		CurrentStep:    w.current,
		CompletedSteps: make([]int, 0, len(w.completed)),
		FormData:       make(map[entity.StepKey]entity.StepPayload, len(w.formData)),
		Documents:      make([]entity.DocumentRecord, len(w.documents)),
	}
	for s := range w.completed {
		snap.CompletedSteps = append(snap.CompletedSteps, s)
	}
	sort.Ints(snap.CompletedSteps)
	for k, v := range w.formData {
		snap.FormData[k] = v
	}
	copy(snap.Documents, w.documents)
	return snap
}

// persist writes the current state to the store. Failures are logged and
// swallowed: the in-memory state remains authoritative for the session and
// the UI must stay usable without reload durability.
func (w *Wizard) persist() {
	w.mu.Lock()
	snap := w.snapshotLocked()
	w.mu.Unlock()

	if err := w.store.Save(snap); err != nil {
		w.logger.Warn("Failed to persist onboarding state", zap.Error(err))
	}
}
