package wizard

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
)

// Snapshot is the serializable form of the wizard state. It is what the
// durable stores persist and what read-only consumers receive.
type Snapshot struct {
	CurrentStep    int                                  `json:"currentStep"`
	CompletedSteps []int                                `json:"completedSteps"`
	FormData       map[entity.StepKey]entity.StepPayload `json:"-"`
	Documents      []entity.DocumentRecord              `json:"documents"`
}

// snapshotJSON is the wire shape of a Snapshot. Form data is kept as raw
// messages so each entry can be decoded through the step-key union.
type snapshotJSON struct {
	CurrentStep    int                                 `json:"currentStep"`
	CompletedSteps []int                               `json:"completedSteps"`
	FormData       map[entity.StepKey]json.RawMessage `json:"formData"`
	Documents      []entity.DocumentRecord             `json:"documents"`
}

// DefaultSnapshot returns the initial wizard state: step 1, nothing
// completed, no drafts, no documents.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		CurrentStep:    1,
		CompletedSteps: []int{},
		FormData:       map[entity.StepKey]entity.StepPayload{},
		Documents:      []entity.DocumentRecord{},
	}
}

// MarshalJSON implements json.Marshaler.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		CurrentStep:    s.CurrentStep,
		CompletedSteps: s.CompletedSteps,
		FormData:       make(map[entity.StepKey]json.RawMessage, len(s.FormData)),
		Documents:      s.Documents,
	}
	if out.CompletedSteps == nil {
		out.CompletedSteps = []int{}
	}
	if out.Documents == nil {
		out.Documents = []entity.DocumentRecord{}
	}
	for key, payload := range s.FormData {
		raw, err := entity.EncodePayload(payload)
		if err != nil {
			return nil, err
		}
		out.FormData[key] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Entries with an unknown step
// key are dropped rather than failing the whole snapshot.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("wizard: unmarshal snapshot: %w", err)
	}

	s.CurrentStep = in.CurrentStep
	s.CompletedSteps = in.CompletedSteps
	if s.CompletedSteps == nil {
		s.CompletedSteps = []int{}
	}
	sort.Ints(s.CompletedSteps)
	s.Documents = in.Documents
	if s.Documents == nil {
		s.Documents = []entity.DocumentRecord{}
	}

	s.FormData = make(map[entity.StepKey]entity.StepPayload, len(in.FormData))
	for key, raw := range in.FormData {
		payload, err := entity.DecodePayload(key, raw)
		if err != nil {
			continue
		}
		s.FormData[key] = payload
	}
	return nil
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		CurrentStep:    s.CurrentStep,
		CompletedSteps: make([]int, len(s.CompletedSteps)),
		FormData:       make(map[entity.StepKey]entity.StepPayload, len(s.FormData)),
		Documents:      make([]entity.DocumentRecord, len(s.Documents)),
	}
	copy(out.CompletedSteps, s.CompletedSteps)
	copy(out.Documents, s.Documents)
	for k, v := range s.FormData {
		out.FormData[k] = v
	}
	return out
}
