package hermes

const jscmDraft = "https://json-schema.org/draft/2020-12/schema"

type jscmType struct {
	Type string `json:"type"`
}

type jscmNot struct {
	Not struct{} `json:"not"`
}

type jscmArray struct {
	jscmType
	Items any `json:"items,omitempty"`
}

type jscmAnyOf struct {
	AnyOf []any `json:"anyOf"`
}

type jscmObj struct {
	jscmType
	Props map[string]any `json:"properties"`
}
