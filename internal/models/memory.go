package models

// CategorizedFact is built per request and never persisted.
type CategorizedFact struct {
	Fact  string       `json:"fact"`
	Type  FactCategory `json:"type"`
	Clean string       `json:"clean"`
}

type Entities struct {
	Types      []string `json:"types"`
	Names      []string `json:"names"`
	Ages       []string `json:"ages"`
	Conditions []string `json:"conditions"`
	Insurance  []string `json:"insurance"`
}

// MemoryContext is the context API payload. Slices are never nil so the empty
// payload encodes as [] rather than null.
type MemoryContext struct {
	Context  string            `json:"context"`
	Facts    []CategorizedFact `json:"facts"`
	Entities Entities          `json:"entities"`
}

func EmptyMemoryContext() MemoryContext {
	return MemoryContext{
		Context: "",
		Facts:   []CategorizedFact{},
		Entities: Entities{
			Types:      []string{},
			Names:      []string{},
			Ages:       []string{},
			Conditions: []string{},
			Insurance:  []string{},
		},
	}
}

type RememberResponse struct {
	Stored bool `json:"stored"`
}
