package roster

// Participant is a project member priced by seniority level.
//
// Registries store *Participant and compare by pointer: two participants with
// identical fields are still different entries.
type Participant struct {
	// SeniorityLevel keys into the pricing table. Required.
	SeniorityLevel string
	// Name is an optional display name.
	Name string
	// Attributes holds any other caller data. The registry never reads it.
	Attributes map[string]any
}

// ParticipantOption configures a Participant.
type ParticipantOption func(*Participant)

// WithName sets the participant's display name.
func WithName(name string) ParticipantOption {
	return func(p *Participant) {
		p.Name = name
	}
}

// WithAttribute sets a free-form attribute.
func WithAttribute(key string, value any) ParticipantOption {
	return func(p *Participant) {
		if p.Attributes == nil {
			p.Attributes = make(map[string]any)
		}
		p.Attributes[key] = value
	}
}

// NewParticipant creates a participant at the given seniority level.
// Returns ErrMissingSeniorityLevel if level is empty.
func NewParticipant(level string, opts ...ParticipantOption) (*Participant, error) {
	if level == "" {
		return nil, ErrMissingSeniorityLevel
	}
	p := &Participant{SeniorityLevel: level}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// MustParticipant is like NewParticipant but panics on error.
// Intended for tests and static fixtures.
func MustParticipant(level string, opts ...ParticipantOption) *Participant {
	p, err := NewParticipant(level, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether p may be stored: non-nil with a seniority level.
func (p *Participant) Valid() bool {
	return p != nil && p.SeniorityLevel != ""
}

// Predicate selects participants in a search.
type Predicate func(p *Participant) bool

// BySeniority matches participants at level.
func BySeniority(level string) Predicate {
	return func(p *Participant) bool {
		return p.SeniorityLevel == level
	}
}

// ByName matches participants with the given name.
func ByName(name string) Predicate {
	return func(p *Participant) bool {
		return p.Name == name
	}
}
