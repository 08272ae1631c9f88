package model

// ID is an opaque unique identifier. The manager's canonical wire shape
// for every identifier is an object with a single "value" field.
type ID struct {
	Value string `json:"value"`
}

// String implements fmt.Stringer for log output.
func (id ID) String() string {
	return id.Value
}

// Empty reports whether the identifier carries no value.
func (id ID) Empty() bool {
	return id.Value == ""
}
