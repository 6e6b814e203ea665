package conversion

// NeedKind is the kind of native glue a conversion asks for.
type NeedKind int

const (
	// MakeStringConstructor asks for a string factory function.
	MakeStringConstructor NeedKind = iota
	// ByValueWrapper asks for a shim that moves non-trivial values across
	// the boundary inside owning handles.
	ByValueWrapper
)

func (k NeedKind) String() string {
	switch k {
	case MakeStringConstructor:
		return "make_string"
	case ByValueWrapper:
		return "by_value_wrapper"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the kind by name.
func (k NeedKind) MarshalYAML() (any, error) { return k.String(), nil }

// AdditionalNeed is a request for native code the bridge library cannot
// produce itself. It is consumed by a separate glue synthesis stage.
type AdditionalNeed struct {
	Kind NeedKind `yaml:"kind"`
	// Wrapper is the native symbol the glue must define.
	Wrapper string `yaml:"wrapper,omitempty"`
	// Original is the qualified native function being wrapped.
	Original string `yaml:"original,omitempty"`
	// Receiver is the qualified native type for methods.
	Receiver string      `yaml:"receiver,omitempty"`
	Params   []NeedParam `yaml:"params,omitempty"`
	Return   *NeedParam  `yaml:"return,omitempty"`
}

// NeedParam describes one value crossing a wrapper.
type NeedParam struct {
	Name string `yaml:"name,omitempty"`
	// Type is the qualified native type, or the bridge spelling for
	// primitives.
	Type string `yaml:"type"`
	// ByValue marks non-trivial values moved through an owning handle.
	ByValue bool `yaml:"by_value,omitempty"`
}
