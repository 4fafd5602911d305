package profile

import (
	"encoding/json"
	"fmt"
)

// Store holds the profile resolved at startup. It is never mutated after
// construction; Get hands out deep copies so callers cannot alias it.
type Store struct {
	profile  Profile
	source   Source
	snapshot string
}

// NewStore wraps p. The JSON snapshot embedded in prompts is computed once.
func NewStore(p Profile, src Source) (*Store, error) {
	cp := deepCopyProfile(&p)
	b, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling profile snapshot: %w", err)
	}
	return &Store{profile: cp, source: src, snapshot: string(b)}, nil
}

// Open loads the profile at path (see Load) and wraps it in a Store.
func Open(path string) (*Store, error) {
	p, src, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(p, src)
}

// Get returns a copy of the profile.
func (s *Store) Get() Profile {
	return deepCopyProfile(&s.profile)
}

// Source reports whether the profile was loaded or is the placeholder.
func (s *Store) Source() Source {
	return s.source
}

// Snapshot returns the profile serialized as indented JSON.
func (s *Store) Snapshot() string {
	return s.snapshot
}

// Name and ContactEmail are shortcuts for the two fields the response
// orchestrator needs on its failure path.
func (s *Store) Name() string         { return s.profile.Name }
func (s *Store) ContactEmail() string { return s.profile.Contact.Email }

func deepCopyProfile(p *Profile) Profile {
	if p == nil {
		return Profile{}
	}
	cp := *p

	if p.Education != nil {
		cp.Education = make([]Education, len(p.Education))
		copy(cp.Education, p.Education)
	}
	if p.Experience != nil {
		cp.Experience = make([]WorkExperience, len(p.Experience))
		for i, w := range p.Experience {
			w.Achievements = copyStrings(w.Achievements)
			cp.Experience[i] = w
		}
	}
	if p.Projects != nil {
		cp.Projects = make([]Project, len(p.Projects))
		for i, pr := range p.Projects {
			pr.Technologies = copyStrings(pr.Technologies)
			cp.Projects[i] = pr
		}
	}
	if p.Skills != nil {
		cp.Skills = make([]SkillCategory, len(p.Skills))
		for i, sk := range p.Skills {
			sk.Items = copyStrings(sk.Items)
			cp.Skills[i] = sk
		}
	}
	cp.Interests = copyStrings(p.Interests)
	return cp
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
