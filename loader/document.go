package loader

// Document is the top-level shape of a model file: one ordered batch of
// element declarations. Edges, slots, requirement specs, and step chains
// are nested under the element that owns them.
type Document struct {
	Elements []ElementDecl `yaml:"elements"`
}

// ElementDecl declares one model element. ID may be omitted, in which
// case the loader assigns a UUID; elements referenced elsewhere in the
// document need explicit ids.
type ElementDecl struct {
	ID          string     `yaml:"id"`
	ShortName   string     `yaml:"short_name"`
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind"`
	Owner       string     `yaml:"owner"`
	Abstract    bool       `yaml:"abstract"`
	Specializes []SpecDecl `yaml:"specializes"`
	Attributes  []AttrDecl `yaml:"attributes"`
	Requirement *ReqDecl   `yaml:"requirement"`
	Steps       []StepDecl `yaml:"steps"`
}

// SpecDecl declares a specialization edge. Kind defaults to subtype.
type SpecDecl struct {
	Target string `yaml:"target"`
	Kind   string `yaml:"kind"`
}

// AttrDecl declares an attribute slot. A unit makes the value a
// quantity; Redefines marks the slot as an override of an inherited
// slot of the same name.
type AttrDecl struct {
	Name      string      `yaml:"name"`
	Type      string      `yaml:"type"`
	Value     interface{} `yaml:"value"`
	Unit      string      `yaml:"unit"`
	Redefines bool        `yaml:"redefines"`
}

// ReqDecl declares the subject, stakeholders, and constraint of a
// requirement element
type ReqDecl struct {
	Subject      string    `yaml:"subject"`
	Stakeholders []string  `yaml:"stakeholders"`
	Constraint   *ExprDecl `yaml:"constraint"`
}

// ExprDecl is one node of a constraint expression tree. Exactly one of
// Op (with Left/Right), Attribute, SizeOf, or a literal Value applies.
type ExprDecl struct {
	Op    string    `yaml:"op"`
	Left  *ExprDecl `yaml:"left"`
	Right *ExprDecl `yaml:"right"`

	Attribute string `yaml:"attribute"`

	SizeOf string `yaml:"size_of"`

	Value interface{} `yaml:"value"`
	Unit  string      `yaml:"unit"`
}

// StepDecl declares one step of an action flow. Then names the
// successor step; Done marks the transition to the terminal state.
type StepDecl struct {
	Name  string `yaml:"name"`
	First bool   `yaml:"first"`
	Then  string `yaml:"then"`
	Done  bool   `yaml:"done"`
}
